package movement

import "github.com/oomph-ac/locomotion/game"

// TargetSpeed selects the speed the body is blended towards. Crouching wins over everything. Sprinting and
// running only apply while grounded without a ceiling above.
func TargetSpeed(conf Config, grounded, ceiling, run, sprint, crouch bool) float32 {
	switch {
	case crouch:
		return conf.CrouchSpeed
	case grounded && !ceiling && sprint:
		return conf.SprintSpeed
	case grounded && !ceiling && run:
		return conf.RunSpeed
	default:
		return conf.WalkSpeed
	}
}

// Blend moves lastSpeed towards target. On the ground the body slows down faster than it speeds up, in the
// air the speed barely changes.
func Blend(grounded bool, lastSpeed, target, dt float32) float32 {
	if !grounded {
		return game.Lerp(lastSpeed, target, game.AirborneBlendRate*dt)
	}
	rate := game.GroundAccelRate
	if lastSpeed > target {
		rate = game.GroundDecelRate
	}
	return game.Lerp(lastSpeed, target, rate*dt)
}

// BlendSpeed selects the target speed for the given state and blends lastSpeed towards it. A ceiling
// above the body clamps the result to the crouch speed.
func BlendSpeed(conf Config, grounded, ceiling, run, sprint, crouch bool, lastSpeed, dt float32) float32 {
	speed := Blend(grounded, lastSpeed, TargetSpeed(conf, grounded, ceiling, run, sprint, crouch), dt)
	if ceiling {
		return conf.CrouchSpeed
	}
	return speed
}
