package model

// SubjectDomain selects the domain framing of the tutoring prompt.
type SubjectDomain string

const (
	SubjectCoding         SubjectDomain = "coding"
	SubjectDataStructures SubjectDomain = "dsa"
	SubjectAlgorithms     SubjectDomain = "algorithms"
	SubjectMathematics    SubjectDomain = "mathematics"
	SubjectTheory         SubjectDomain = "theory"
	SubjectMultipleChoice SubjectDomain = "mcq"
)

func AllSubjectDomains() []SubjectDomain {
	return []SubjectDomain{
		SubjectCoding,
		SubjectDataStructures,
		SubjectAlgorithms,
		SubjectMathematics,
		SubjectTheory,
		SubjectMultipleChoice,
	}
}

func (s SubjectDomain) Valid() bool {
	switch s {
	case SubjectCoding, SubjectDataStructures, SubjectAlgorithms,
		SubjectMathematics, SubjectTheory, SubjectMultipleChoice:
		return true
	}
	return false
}

// ToneMode selects the phrasing of the tutoring prompt.
type ToneMode string

const (
	ToneGentle       ToneMode = "gentle"
	ToneExamOriented ToneMode = "exam-oriented"
	ToneStrictMentor ToneMode = "strict-mentor"
)

func AllToneModes() []ToneMode {
	return []ToneMode{ToneGentle, ToneExamOriented, ToneStrictMentor}
}

func (t ToneMode) Valid() bool {
	switch t {
	case ToneGentle, ToneExamOriented, ToneStrictMentor:
		return true
	}
	return false
}
