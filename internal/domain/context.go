package domain

import "time"

// CommandContext carries who asked for a command and where the reply goes.
type CommandContext struct {
	// Room is the reply target: the Iris chat id when known, the room name otherwise.
	Room       string
	RoomName   string
	Sender     string
	Message    string
	ReceivedAt time.Time
}

func NewCommandContext(room, roomName, sender, message string) *CommandContext {
	return &CommandContext{
		Room:       room,
		RoomName:   roomName,
		Sender:     sender,
		Message:    message,
		ReceivedAt: time.Now(),
	}
}
