package components

import "github.com/yohamta/donburi"

// MessageStateData is a singleton holding the banner shown over the level
type MessageStateData struct {
	Text         string
	DisplayTimer int // Frames remaining to display Text
}

var MessageState = donburi.NewComponentType[MessageStateData]()
