package domain

// ModerationResult is the gate's verdict for one piece of text. Reason is a
// generic summary and never names the vocabulary that triggered the block.
type ModerationResult struct {
	Blocked bool
	Reason  string
}
