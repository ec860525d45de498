package domain

// Stage is a step of the publishing pipeline.
type Stage int

const (
	StageValidate Stage = iota
	StageResolve
	StageEnumerate
	StageSignAndPack
	StagePublishSequence
	StageSummarize
)

// String returns a human-readable representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageValidate:
		return "validate"
	case StageResolve:
		return "resolve"
	case StageEnumerate:
		return "enumerate"
	case StageSignAndPack:
		return "sign_and_pack"
	case StagePublishSequence:
		return "publish_sequence"
	case StageSummarize:
		return "summarize"
	default:
		return "unknown"
	}
}
