package movement

import "github.com/oomph-ac/locomotion/physics"

// pushDownThreshold is the vertical move direction below which a contact is treated as something the body
// stands on.
const pushDownThreshold = -0.3

// Push applies a push velocity to every non-kinematic body among contacts and returns how many were
// pushed.
func Push(contacts []physics.Contact, speed float32) (pushed int) {
	for _, c := range contacts {
		if c.Body == nil || c.Body.Kinematic() {
			continue
		}
		if c.MoveDirection.Y() < pushDownThreshold {
			continue
		}
		c.Body.SetVelocity(c.MoveDirection.Mul(speed))
		pushed++
	}
	return
}
