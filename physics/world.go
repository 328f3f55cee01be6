// Package physics is a small rigid body engine: boxes integrated with
// semi-implicit Euler, gravity, damping and a ground plane.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glide/config"
)

// restingSpeed is the vertical speed below which a ground bounce is dropped.
const restingSpeed = 0.5

// pose is the world transform of a body.
type pose struct {
	T Transform
}

// rigid holds the dynamic state of a body.
type rigid struct {
	InvMass     float64
	Restitution float64
	HalfExtents mgl64.Vec3
	LinVel      mgl64.Vec3
	AngVel      mgl64.Vec3

	OwnGravity    bool       // Gravity overrides the world gravity
	Gravity       mgl64.Vec3 // per-body acceleration while OwnGravity is set
	AngularFactor float64    // scales AngVel during integration
}

// BodyDef describes a body to create.
type BodyDef struct {
	Mass        float64 // 0 = static
	Transform   Transform
	HalfExtents mgl64.Vec3
	Restitution float64
}

// World owns all bodies. Bodies are stored as entities in an ark world,
// which may be shared with other systems.
type World struct {
	ecs    *ecs.World
	mapper *ecs.Map2[pose, rigid]
	poses  *ecs.Map1[pose]
	rigids *ecs.Map1[rigid]
	filter *ecs.Filter2[pose, rigid]

	cfg   config.PhysicsConfig
	count int
}

// NewWorld creates a physics world storing bodies in w.
func NewWorld(w *ecs.World, cfg config.PhysicsConfig) *World {
	return &World{
		ecs:    w,
		mapper: ecs.NewMap2[pose, rigid](w),
		poses:  ecs.NewMap1[pose](w),
		rigids: ecs.NewMap1[rigid](w),
		filter: ecs.NewFilter2[pose, rigid](w),
		cfg:    cfg,
	}
}

// CreateBody adds a body to the world and returns its handle.
func (w *World) CreateBody(def BodyDef) *Body {
	invMass := 0.0
	if def.Mass > 0 {
		invMass = 1 / def.Mass
	}
	p := pose{T: NewTransform(def.Transform.Position, def.Transform.Rotation)}
	r := rigid{
		InvMass:       invMass,
		Restitution:   def.Restitution,
		HalfExtents:   def.HalfExtents,
		AngularFactor: 1,
	}
	e := w.mapper.NewEntity(&p, &r)
	w.count++

	b := &Body{world: w, entity: e}
	b.motion = MotionState{body: b}
	return b
}

// DestroyBody removes a body. The handle becomes invalid.
func (w *World) DestroyBody(b *Body) {
	if !b.Valid() || b.world != w {
		return
	}
	w.ecs.RemoveEntity(b.entity)
	w.count--
}

// Gravity returns the world gravity.
func (w *World) Gravity() mgl64.Vec3 {
	return mgl64.Vec3{0, -w.cfg.Gravity, 0}
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return w.count
}

// Step advances all dynamic bodies by dt seconds.
func (w *World) Step(dt float64) {
	if !(dt > 0) {
		return
	}
	gravity := w.Gravity()
	linKeep := math.Max(0, 1-w.cfg.LinearDamping*dt)
	angKeep := math.Max(0, 1-w.cfg.AngularDamping*dt)

	query := w.filter.Query()
	for query.Next() {
		p, r := query.Get()
		if r.InvMass == 0 {
			continue
		}

		g := gravity
		if r.OwnGravity {
			g = r.Gravity
		}
		r.LinVel = r.LinVel.Add(g.Mul(dt)).Mul(linKeep)
		r.AngVel = r.AngVel.Mul(angKeep)

		p.T.Position = p.T.Position.Add(r.LinVel.Mul(dt))
		p.T.Rotation = integrateRotation(p.T.Rotation, r.AngVel.Mul(r.AngularFactor), dt)

		// Ground plane contact
		floor := w.cfg.GroundY + r.HalfExtents.Y()
		if p.T.Position.Y() < floor {
			p.T.Position[1] = floor
			if r.LinVel.Y() < 0 {
				r.LinVel[1] = -r.LinVel.Y() * r.Restitution
				if r.LinVel.Y() < restingSpeed {
					r.LinVel[1] = 0
				}
			}
		}
	}
}

// integrateRotation applies angular velocity w (world frame, rad/s) to q over dt.
func integrateRotation(q mgl64.Quat, w mgl64.Vec3, dt float64) mgl64.Quat {
	if w.LenSqr() == 0 {
		return q
	}
	spin := mgl64.Quat{W: 0, V: w}.Mul(q).Scale(0.5 * dt)
	return q.Add(spin).Normalize()
}
