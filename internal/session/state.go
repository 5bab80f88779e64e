package session

import "fmt"

type AppState uint8

const (
	StateSetup AppState = iota
	StateInMenu
	StateLoading
	StateInGame
)

// LoadSource says where a loading session gets its map from. Only
// generation is implemented.
type LoadSource uint8

const (
	LoadGeneration LoadSource = iota
	LoadFromLocal
	LoadFromOnline
)

func (s AppState) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateInMenu:
		return "in_menu"
	case StateLoading:
		return "loading"
	case StateInGame:
		return "in_game"
	default:
		return fmt.Sprintf("AppState(%d)", s)
	}
}

func (l LoadSource) String() string {
	switch l {
	case LoadGeneration:
		return "generation"
	case LoadFromLocal:
		return "local"
	case LoadFromOnline:
		return "online"
	default:
		return fmt.Sprintf("LoadSource(%d)", l)
	}
}

// MotionBounds limits the free-motion camera once a galaxy is loaded.
type MotionBounds struct {
	MinHeight float32
	MaxHeight float32
	MaxTheta  float32
	MaxRadius float32
}
