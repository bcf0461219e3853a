package model

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// InteractionState represents the current UI interaction state
type InteractionState struct {
	ShowHelp      bool
	StatusMessage string // Status message to display
	ConfirmDialog *ConfirmDialog
	Alert         *Alert
}

// ConfirmDialog represents a confirmation dialog
type ConfirmDialog struct {
	Title     string
	Message   string
	OnConfirm func()
	OnCancel  func()
}

// Alert is a blocking message dismissed by any key
type Alert struct {
	Title   string
	Message string
}
