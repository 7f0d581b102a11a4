package brackets

import "errors"

// Rejected operations. None of them leaves the tournament partially mutated.
var (
	ErrInvalidStart        = errors.New("at least two active competitors are required to start")
	ErrDuplicateCompetitor = errors.New("competitor already exists")
	ErrUnknownCompetitor   = errors.New("competitor not found")
	ErrIncompleteRound     = errors.New("every match must have a winner before the round can be finalized")
	ErrInvalidWinner       = errors.New("winner is not part of this pairing")
	ErrTiebreakUnavailable = errors.New("no 2nd-3rd place tiebreak is available")
	ErrRoundStalled        = errors.New("no match can be paired: every active competitor is alone in its loss bracket")

	ErrInvalidState     = errors.New("operation not allowed in the current tournament state")
	ErrPairingNotFound  = errors.New("pairing not found in the current round")
	ErrByeNotSelectable = errors.New("a bye has no winner to select")
	ErrAlreadySelected  = errors.New("pairing already has a winner; revert it first")
	ErrNothingToRevert  = errors.New("pairing has no applied result to revert")
	ErrInvalidThreshold = errors.New("elimination threshold must be at least 1")
	ErrInvalidName      = errors.New("competitor name is required")
)
