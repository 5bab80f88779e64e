package world

import (
	"stellaris-server/internal/rng"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
)

// ObjectID is the stable identity of a game object. Entity ids are recycled
// by the ECS and change between runs; ObjectIDs do not.
type ObjectID struct {
	UUID uuid.UUID
}

func NewObjectID() ObjectID {
	return ObjectID{UUID: uuid.New()}
}

func (id ObjectID) String() string {
	return id.UUID.String()
}

// ObjectRef pairs a stable id with the entity currently holding it.
type ObjectRef struct {
	ID     ObjectID
	Entity ecs.Entity
}

type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

func NewTransform(translation mgl32.Vec3, uniformScale float32) Transform {
	return Transform{
		Translation: translation,
		Rotation:    mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{uniformScale, uniformScale, uniformScale},
	}
}

// Matrix composes translation, rotation and scale into a model matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Planets lists the planets of a system. Systems start with none.
type Planets struct {
	Refs []ObjectRef
}

type PlanetarySystem struct {
	Galaxy ecs.Entity
	Index  int
	Mass   float32
	Stream rng.Stream
}

type Galaxy struct {
	Root    rng.RootSeed
	Index   uint64
	Stream  rng.Stream
	Radius  float64
	Systems int
}

// BoundingSize is the half-extent of an object on each axis.
type BoundingSize struct {
	Extent mgl32.Vec3
}

// Coordinate names the frame an object's transform is expressed in. A nil
// Frame means galaxy-global coordinates.
type Coordinate struct {
	Frame *ObjectRef
}
