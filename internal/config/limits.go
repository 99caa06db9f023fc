package config

const (
	// MaxChatTitleLength is the maximum length for chat titles.
	// Titles should be short and descriptive; the title generator
	// targets three words or fewer anyway.
	MaxChatTitleLength = 255

	// MaxProjectIDLength is the maximum length for project ids.
	MaxProjectIDLength = 255

	// MaxMessageContentLength is the maximum length for a single
	// message's content. Large enough for pasted documents, small
	// enough to keep stored chat records bounded.
	MaxMessageContentLength = 100_000
)
