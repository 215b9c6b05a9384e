package occlusion

import "github.com/udisondev/scenequery/internal/model"

// SweepSphere marches a sphere of the given radius from start to end and
// returns the first shape in the channel mask it touches. Shapes the sphere
// already overlaps at start are ignored for the whole sweep, so an actor
// standing on the start point does not block its own view.
func (s *Scene) SweepSphere(start, end model.Vec3, radius float64, channels model.Channel) (model.Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.obstacles) == 0 {
		return model.Hit{}, false
	}

	skip := s.initialOverlaps(start, radius, channels)

	dir := end.Sub(start)
	length := dir.Length()

	t := 0.0
	for {
		p := start
		if length > 0 {
			p = start.Add(dir.Scale(t / length))
		}

		d, idx := s.nearest(p, channels, skip)
		if idx < 0 {
			return model.Hit{}, false
		}
		gap := d - radius
		if gap <= contactEpsilon {
			return s.hit(p, idx), true
		}
		if t >= length {
			return model.Hit{}, false
		}
		t = min(t+max(gap, minStep), length)
	}
}

// initialOverlaps marks the shapes touching the sphere at p. Returns nil
// when there are none.
func (s *Scene) initialOverlaps(p model.Vec3, radius float64, channels model.Channel) []bool {
	var skip []bool
	for i := range s.obstacles {
		d, ok := s.distance(&s.obstacles[i], p, channels)
		if !ok || d-radius > contactEpsilon {
			continue
		}
		if skip == nil {
			skip = make([]bool, len(s.obstacles))
		}
		skip[i] = true
	}
	return skip
}

func (s *Scene) hit(p model.Vec3, idx int) model.Hit {
	o := s.obstacles[idx]
	h := model.Hit{
		Location: p,
		Actor:    o.actor,
		Channel:  o.channel,
	}
	if o.actor.IsValid() && s.locator != nil {
		h.Owners = s.locator.Owners(o.actor)
	}
	return h
}
