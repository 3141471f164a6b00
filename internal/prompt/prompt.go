// Package prompt renders the system and user instructions for one submission.
// Both renderers are pure functions of the submission; no state, no side effects.
//
// The embedded question and attempt are passed through verbatim. The model is
// expected to treat them as untrusted content to analyze, not as instructions;
// prompt-injection hardening is a known residual risk, out of scope here.
package prompt

import (
	"fmt"
	"strings"

	"explainmymistake/internal/model"
)

const rolePreamble = "You are Explain My Mistake, an AI tutor designed to analyze thinking errors and teach from them."

const criticalRules = `CRITICAL RULES (Answer-Safe Mode):
1. NEVER reveal the correct final answer or solution code directly.
2. Focus entirely on the *process* and *reasoning*.
3. If the student is completely wrong, find the specific conceptual misunderstanding.
4. If the student is partially right, validate the correct parts and isolate the error.`

const outputFormat = `OUTPUT FORMAT:
You MUST respond with a valid JSON object matching this structure:
{
  "errorDiagnosis": "Clear, concise diagnosis of the primary error in reasoning.",
  "conceptExplanation": "Explanation of the missing or misunderstood concept.",
  "reasoningGuidance": ["Step 1 hint", "Step 2 hint", ...],
  "proofOfLearning": "A similar problem to verify understanding (new numbers/context).",
  "socraticQuestion": "ONE reflective question to help them find the error themselves.",
  "answerSafeBadge": true,
  "encouragement": "Brief encouraging remark based on tone.",
  "learningMetrics": {
    "conceptResolvedAfterAttempts": {},
    "mistakeRecurrenceRate": 0,
    "improvementVelocity": 0,
    "masteryIndicators": []
  }
}

Ensure the "socraticQuestion" is specific to their actual mistake, not generic.`

// SystemPrompt assembles the role preamble, the subject and tone fragments, the
// answer-safe ruleset and the literal response shape.
func SystemPrompt(sub *model.Submission) string {
	var b strings.Builder
	b.WriteString(rolePreamble)
	b.WriteString("\n\nCONTEXT:\n")
	fmt.Fprintf(&b, "Subject Domain: %s\n", sub.Subject)
	fmt.Fprintf(&b, "Tone Mode: %s\n\n", sub.TonePreference)
	b.WriteString(subjectInstruction(sub.Subject))
	b.WriteString("\n\n")
	b.WriteString(toneInstruction(sub.TonePreference))
	b.WriteString("\n\n")
	b.WriteString(criticalRules)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)
	b.WriteString("\n")
	return b.String()
}

// UserPrompt embeds the question and attempt verbatim.
func UserPrompt(sub *model.Submission) string {
	var b strings.Builder
	b.WriteString("QUESTION:\n")
	b.WriteString(sub.Question)
	b.WriteString("\n\nSTUDENT ATTEMPT:\n")
	b.WriteString(sub.AttemptedAnswer)
	b.WriteString("\n\nAnalyze this submission now. Return ONLY JSON.")
	return b.String()
}

// subjectInstruction is total over SubjectDomain: any valid value outside the
// explicitly framed domains falls back to the general fragment.
func subjectInstruction(subject model.SubjectDomain) string {
	switch subject {
	case model.SubjectCoding, model.SubjectDataStructures, model.SubjectAlgorithms:
		return "Domain: Computer Science / Engineering. Focus on logic, complexity, edge cases, and implementation details. Detect syntax errors vs logic errors."
	case model.SubjectMathematics:
		return "Domain: Mathematics. Focus on calculation steps, theorem application, and logical derivation."
	default:
		return "Domain: General Technical / Academic."
	}
}

// toneInstruction is total over ToneMode with a balanced default.
func toneInstruction(tone model.ToneMode) string {
	switch tone {
	case model.ToneGentle:
		return "Tone: Gentle, encouraging, patient. Use positive reinforcement language ('You're close!', 'Good thought!')."
	case model.ToneStrictMentor:
		return "Tone: Strict Mentor. Direct, challenging, high standards. Focus on precision and rigor. No fluff."
	case model.ToneExamOriented:
		return "Tone: Exam-Oriented. Formal, precise, focused on grading criteria, common pitfalls, and time management."
	default:
		return "Tone: Balanced and educational."
	}
}
