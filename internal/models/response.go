package models

// Card is rendered markup handed to the chat backend. The core treats it as
// opaque; only the renderer knows its shape.
type Card map[string]any

// Response is the synchronous answer to one inbound event: either a dialog
// to show (no persistence) or the status of a card mutation.
type Response struct {
	Kind ResponseKind `json:"kind"`
	// Card 对话框内容, only on KindDialog
	Card Card `json:"card,omitempty"`
	// Text 状态文本, only on KindStatus
	Text string     `json:"text,omitempty"`
	Code StatusCode `json:"code,omitempty"`
}

// Dialog builds a dialog response.
func Dialog(card Card) Response {
	return Response{Kind: KindDialog, Card: card}
}

// Status builds a status response.
func Status(code StatusCode, text string) Response {
	return Response{Kind: KindStatus, Text: text, Code: code}
}
