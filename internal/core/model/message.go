package model

// MessageTypeJumpToTime asks the active overlay to seek immediately
const MessageTypeJumpToTime = "jump-to-time"

// Message is an inter-process request delivered to a running overlay
type Message struct {
	Type    string       `json:"type"`
	Payload *JumpPayload `json:"payload,omitempty"`
}

// JumpPayload carries the seek target in seconds
type JumpPayload struct {
	TimeSeconds float64 `json:"timeSeconds"`
}

// NewJumpMessage builds a jump-to-time message
func NewJumpMessage(seconds float64) Message {
	return Message{
		Type:    MessageTypeJumpToTime,
		Payload: &JumpPayload{TimeSeconds: seconds},
	}
}
