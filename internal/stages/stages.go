// Package stages holds the static policy for the review stages that
// participate in the observation/correction cycle: which file types each
// stage expects, which of them are obligatory, and which audit action codes
// record submissions for the stage.
package stages

import (
	"errors"
	"fmt"
)

// Cycle stages. Stages 14 and 16 are two-phase: they require an initial
// presentation before the observe/correct cycle begins.
const (
	StageProjectReview1 = 2
	StageProjectReview2 = 3
	StageProjectReview3 = 4
	StageDraftReview    = 11
	StagePreDefense     = 14
	StageFinalThesis    = 16
)

// ErrUnsupportedStage indicates a stage outside the correction cycle.
var ErrUnsupportedStage = errors.New("stage not supported by the correction cycle")

var cycleStages = []int{2, 3, 4, 11, 14, 16}

// Audit action codes per stage, one per submitted correction.
var correctionActions = map[int]int{
	2:  7,
	3:  12,
	4:  16,
	11: 40,
	14: 52,
	16: 66,
}

// First-presentation action codes. Only stages 14 and 16 record an initial
// unobserved submission; stage 14 has no dedicated submission entry point
// but its code still counts toward total submissions.
var firstPresentationActions = map[int]int{
	14: 49,
	16: 63,
}

// Cycle returns the stages participating in the correction cycle, ascending.
func Cycle() []int {
	out := make([]int, len(cycleStages))
	copy(out, cycleStages)
	return out
}

// InCycle reports whether the stage participates in the correction cycle.
func InCycle(stage int) bool {
	_, ok := correctionActions[stage]
	return ok
}

// RequiredFileTypes returns the ordered file-type ids a submission at the
// given stage must offer. Stage 14 starts with the pre-defense pair and
// widens to include the draft-report types once a correction has been sent.
func RequiredFileTypes(stage int, alreadyCorrected bool) ([]int, error) {
	switch stage {
	case StageFinalThesis:
		return []int{20, 21}, nil
	case StagePreDefense:
		if alreadyCorrected {
			return []int{14, 15, 16, 17, 18}, nil
		}
		return []int{17, 18}, nil
	case StageDraftReview:
		return []int{7, 8, 10, 11, 12, 13}, nil
	case StageProjectReview1, StageProjectReview2, StageProjectReview3:
		return []int{1, 2, 3, 4, 5}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedStage, stage)
	}
}

// IsObligatory reports whether the file type must be present in a submission
// at the given stage.
func IsObligatory(stage, fileTypeID int, alreadyCorrected bool) bool {
	switch stage {
	case StageFinalThesis:
		return !alreadyCorrected
	case StagePreDefense:
		if alreadyCorrected {
			return false
		}
		return fileTypeID == 17 || fileTypeID == 18
	case StageDraftReview:
		return fileTypeID == 10
	case StageProjectReview1, StageProjectReview2, StageProjectReview3:
		return fileTypeID == 1 || fileTypeID == 2 || fileTypeID == 3
	default:
		return false
	}
}

// CorrectionActionCode returns the audit action code recorded per submitted
// correction at the stage.
func CorrectionActionCode(stage int) (int, error) {
	code, ok := correctionActions[stage]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedStage, stage)
	}
	return code, nil
}

// FirstPresentationActionCode returns the audit action code of the initial
// presentation for two-phase stages, and false for every other stage.
func FirstPresentationActionCode(stage int) (int, bool) {
	code, ok := firstPresentationActions[stage]
	return code, ok
}
