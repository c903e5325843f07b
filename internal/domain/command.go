package domain

type CommandType string

const (
	CommandNotes   CommandType = "notes"
	CommandPreview CommandType = "preview"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandNotes, CommandPreview, CommandHelp, CommandUnknown:
		return true
	default:
		return false
	}
}
