package component

import "github.com/milk9111/rollcourse/physics"

// RigidBody links an entity to the physics body it exclusively owns.
type RigidBody struct {
	Handle physics.Handle
	Type   physics.BodyType
}

var RigidBodyComponent = NewComponent[RigidBody]()
