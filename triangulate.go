package debugdraw

import (
	"cmp"
	"math"
	"slices"

	"github.com/pkg/errors"
)

// ErrTriangulation reports an outline that could not be turned into triangles.
var ErrTriangulation = errors.New("debugdraw: cannot triangulate outline")

// Triangulate converts a set of closed contours into a triangle list.
//
// Contours nested inside an odd number of other contours are holes of the
// smallest contour enclosing them, so both TrueType (clockwise outer) and
// PostScript (counter-clockwise outer) conventions work. Holes are bridged
// into their outer ring and the resulting simple polygon is ear-clipped.
// All returned triangles are counter-clockwise.
//
// Contours with fewer than three distinct points or no area are ignored.
// If contours were given but none of them could be used, or a ring cannot be
// clipped, ErrTriangulation is returned.
func Triangulate(contours []Contour) ([][3]Vec2, error) {
	if len(contours) == 0 {
		return nil, nil
	}

	rings := make([]ring, 0, len(contours))
	for i, c := range contours {
		r, err := newRing(c)
		if err != nil {
			return nil, errors.Wrapf(err, "contour %d", i)
		}
		if r != nil {
			rings = append(rings, *r)
		}
	}
	if len(rings) == 0 {
		return nil, errors.Wrap(ErrTriangulation, "no usable contour")
	}

	classifyRings(rings)

	e := &earcut{}
	for i := range rings {
		if rings[i].depth%2 != 0 {
			continue
		}
		var holes []*ring
		for j := range rings {
			if rings[j].parent == i {
				holes = append(holes, &rings[j])
			}
		}
		if err := e.polygon(&rings[i], holes); err != nil {
			return nil, errors.Wrapf(err, "ring %d", i)
		}
	}
	return e.triangles, nil
}

type point struct {
	x, y float64
}

// ring is a cleaned contour with its nesting information.
type ring struct {
	pts    []point
	area   float64 // Signed, positive when counter-clockwise
	depth  int     // Number of rings enclosing this one
	parent int     // Enclosing ring one level up, -1 if none
}

// newRing drops repeated points and the explicit closing point.
// It returns nil for contours that enclose no area.
func newRing(c Contour) (*ring, error) {
	pts := make([]point, 0, len(c))
	for _, v := range c {
		p := point{float64(v.X), float64(v.Y)}
		if math.IsNaN(p.x) || math.IsNaN(p.y) || math.IsInf(p.x, 0) || math.IsInf(p.y, 0) {
			return nil, errors.Wrap(ErrTriangulation, "non-finite coordinate")
		}
		if n := len(pts); n > 0 && pts[n-1] == p {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil, nil
	}
	area := signedArea(pts)
	if area == 0 {
		return nil, nil
	}
	return &ring{pts: pts, area: area, parent: -1}, nil
}

func signedArea(pts []point) float64 {
	var sum float64
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		sum += pts[j].x*pts[i].y - pts[i].x*pts[j].y
	}
	return sum / 2
}

// containsPoint is an even-odd ray cast.
func (r *ring) containsPoint(p point) bool {
	inside := false
	for i, j := 0, len(r.pts)-1; i < len(r.pts); j, i = i, i+1 {
		a, b := r.pts[i], r.pts[j]
		if (a.y > p.y) != (b.y > p.y) && p.x < (b.x-a.x)*(p.y-a.y)/(b.y-a.y)+a.x {
			inside = !inside
		}
	}
	return inside
}

// classifyRings computes nesting depth and the direct parent of every ring.
func classifyRings(rings []ring) {
	contains := func(outer, inner *ring) bool {
		return math.Abs(outer.area) > math.Abs(inner.area) && outer.containsPoint(inner.pts[0])
	}
	for i := range rings {
		for j := range rings {
			if i != j && contains(&rings[j], &rings[i]) {
				rings[i].depth++
			}
		}
	}
	for i := range rings {
		if rings[i].depth%2 == 0 {
			continue
		}
		best := -1
		for j := range rings {
			if rings[j].depth != rings[i].depth-1 || !contains(&rings[j], &rings[i]) {
				continue
			}
			if best < 0 || math.Abs(rings[j].area) < math.Abs(rings[best].area) {
				best = j
			}
		}
		rings[i].parent = best
	}
}

// node is a vertex of a circular doubly linked polygon.
// Bridge duplicates share the id of the vertex they copy.
type node struct {
	id         int
	x, y       float64
	prev, next *node
	steiner    bool
}

// earcut clips ears off linked polygons, collecting triangles.
type earcut struct {
	triangles [][3]Vec2
	nextID    int
}

func (e *earcut) polygon(outer *ring, holes []*ring) error {
	list := e.link(outer.pts, true)
	if list == nil || list.next == list.prev {
		return nil
	}
	if len(holes) > 0 {
		list = e.eliminateHoles(holes, list)
	}
	if !e.clip(list, 0) {
		return ErrTriangulation
	}
	return nil
}

// link builds a circular list with the requested orientation and returns its last node.
func (e *earcut) link(pts []point, ccw bool) *node {
	var last *node
	if (signedArea(pts) > 0) == ccw {
		for _, p := range pts {
			last = e.insert(p, last)
		}
	} else {
		for i := len(pts) - 1; i >= 0; i-- {
			last = e.insert(pts[i], last)
		}
	}
	if last != nil && equals(last, last.next) {
		removeNode(last)
		last = last.next
	}
	return last
}

func (e *earcut) insert(p point, last *node) *node {
	n := &node{id: e.nextID, x: p.x, y: p.y}
	e.nextID++
	if last == nil {
		n.prev, n.next = n, n
	} else {
		n.next = last.next
		n.prev = last
		last.next.prev = n
		last.next = n
	}
	return n
}

func (e *earcut) emit(a, b, c *node) {
	area := cross(a, b, c)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
	}
	e.triangles = append(e.triangles, [3]Vec2{
		{X: float32(a.x), Y: float32(a.y)},
		{X: float32(b.x), Y: float32(b.y)},
		{X: float32(c.x), Y: float32(c.y)},
	})
}

// clip ear-clips the polygon starting at ear. When a full turn finds no ear
// it retries with degenerate points removed, then with local
// self-intersections cured, then by splitting the polygon in two.
func (e *earcut) clip(ear *node, pass int) bool {
	if ear == nil {
		return true
	}
	stop := ear
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next
		if isEar(ear) {
			e.emit(prev, ear, next)
			removeNode(ear)
			// skipping the next vertex leaves fewer sliver triangles
			ear = next.next
			stop = next.next
			continue
		}
		ear = next
		if ear == stop {
			switch pass {
			case 0:
				return e.clip(filterPoints(ear, nil), 1)
			case 1:
				return e.clip(e.cureLocalIntersections(filterPoints(ear, nil)), 2)
			default:
				return e.splitClip(ear)
			}
		}
	}
	return true
}

func isEar(ear *node) bool {
	a, b, c := ear.prev, ear, ear.next
	if cross(a, b, c) <= 0 {
		return false
	}

	minX, maxX := min(a.x, b.x, c.x), max(a.x, b.x, c.x)
	minY, maxY := min(a.y, b.y, c.y), max(a.y, b.y, c.y)

	for p := c.next; p != a; p = p.next {
		if p.x >= minX && p.x <= maxX && p.y >= minY && p.y <= maxY &&
			!(p.x == a.x && p.y == a.y) &&
			pointInTriangle(a.x, a.y, b.x, b.y, c.x, c.y, p.x, p.y) &&
			cross(p.prev, p, p.next) <= 0 {
			return false
		}
	}
	return true
}

// cureLocalIntersections clips the small triangle formed where two adjacent
// edges cross each other.
func (e *earcut) cureLocalIntersections(start *node) *node {
	if start == nil {
		return nil
	}
	p := start
	for {
		a, b := p.prev, p.next.next
		if !equals(a, b) && intersects(a, p, p.next, b) && locallyInside(a, b) && locallyInside(b, a) {
			e.emit(a, p, b)
			removeNode(p)
			removeNode(p.next)
			p, start = b, b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filterPoints(p, nil)
}

// splitClip looks for a valid diagonal, splits the polygon along it and clips both halves.
func (e *earcut) splitClip(start *node) bool {
	a := start
	for {
		for b := a.next.next; b != a.prev; b = b.next {
			if a.id != b.id && isValidDiagonal(a, b) {
				c := splitPolygon(a, b)
				a = filterPoints(a, a.next)
				c = filterPoints(c, c.next)
				return e.clip(a, 0) && e.clip(c, 0)
			}
		}
		a = a.next
		if a == start {
			return false
		}
	}
}

func (e *earcut) eliminateHoles(holes []*ring, outer *node) *node {
	queue := make([]*node, 0, len(holes))
	for _, h := range holes {
		list := e.link(h.pts, false)
		if list == nil {
			continue
		}
		if list == list.next {
			list.steiner = true
		}
		queue = append(queue, leftmost(list))
	}
	slices.SortFunc(queue, func(a, b *node) int {
		if a.x != b.x {
			return cmp.Compare(a.x, b.x)
		}
		return cmp.Compare(a.y, b.y)
	})
	for _, h := range queue {
		outer = eliminateHole(h, outer)
	}
	return outer
}

// eliminateHole connects the hole to the outer polygon with a pair of
// coincident bridge edges, turning both into one simple polygon.
func eliminateHole(hole, outer *node) *node {
	bridge := findHoleBridge(hole, outer)
	if bridge == nil {
		return outer
	}
	reverse := splitPolygon(bridge, hole)
	filterPoints(reverse, reverse.next)
	return filterPoints(bridge, bridge.next)
}

// findHoleBridge finds an outer vertex visible from the hole's leftmost point.
func findHoleBridge(hole, outer *node) *node {
	hx, hy := hole.x, hole.y
	qx := math.Inf(-1)
	var m *node

	// cast a ray from the hole point to the left and find the closest edge it hits
	p := outer
	if equals(hole, p) {
		return p
	}
	for {
		if equals(hole, p.next) {
			return p.next
		}
		if hy <= p.y && hy >= p.next.y && p.next.y != p.y {
			x := p.x + (hy-p.y)*(p.next.x-p.x)/(p.next.y-p.y)
			if x <= hx && x > qx {
				qx = x
				m = p.next
				if p.x < p.next.x {
					m = p
				}
				if x == hx {
					return m
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if m == nil {
		return nil
	}

	// vertices inside the triangle (hole point, ray hit, m) may block m;
	// pick the one with the smallest angle to the ray instead
	stop := m
	mx, my := m.x, m.y
	tanMin := math.Inf(1)
	ax, cx := qx, hx
	if hy < my {
		ax, cx = hx, qx
	}
	p = m
	for {
		if hx >= p.x && p.x >= mx && hx != p.x && pointInTriangle(ax, hy, mx, my, cx, hy, p.x, p.y) {
			tan := math.Abs(hy-p.y) / (hx - p.x)
			if locallyInside(p, hole) &&
				(tan < tanMin || (tan == tanMin && (p.x > m.x || (p.x == m.x && sectorContainsSector(m, p))))) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

func leftmost(start *node) *node {
	p, best := start, start
	for {
		if p.x < best.x || (p.x == best.x && p.y < best.y) {
			best = p
		}
		p = p.next
		if p == start {
			return best
		}
	}
}

// filterPoints removes duplicate and collinear points between start and end.
func filterPoints(start, end *node) *node {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}
	p := start
	for {
		again := false
		if !p.steiner && (equals(p, p.next) || cross(p.prev, p, p.next) == 0) {
			removeNode(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

// splitPolygon links a to b, duplicating both, and returns the duplicate of b.
// The ring becomes two rings sharing the a-b diagonal.
func splitPolygon(a, b *node) *node {
	a2 := &node{id: a.id, x: a.x, y: a.y}
	b2 := &node{id: b.id, x: b.x, y: b.y}
	an, bp := a.next, b.prev

	a.next = b
	b.prev = a

	a2.next = an
	an.prev = a2

	b2.next = a2
	a2.prev = b2

	bp.next = b2
	b2.prev = bp

	return b2
}

func removeNode(p *node) {
	p.next.prev = p.prev
	p.prev.next = p.next
}

func isValidDiagonal(a, b *node) bool {
	if a.next.id == b.id || a.prev.id == b.id || intersectsPolygon(a, b) {
		return false
	}
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(cross(a.prev, a, b.prev) != 0 || cross(a, b.prev, b) != 0) {
		return true
	}
	// zero-length diagonal between two reflex bridge duplicates
	return equals(a, b) && cross(a.prev, a, a.next) < 0 && cross(b.prev, b, b.next) < 0
}

func intersectsPolygon(a, b *node) bool {
	p := a
	for {
		if p.id != a.id && p.next.id != a.id && p.id != b.id && p.next.id != b.id &&
			intersects(p, p.next, a, b) {
			return true
		}
		p = p.next
		if p == a {
			return false
		}
	}
}

// locallyInside reports whether the diagonal a-b starts inside the polygon at a.
func locallyInside(a, b *node) bool {
	if cross(a.prev, a, a.next) > 0 {
		return cross(a, b, a.next) <= 0 && cross(a, a.prev, b) <= 0
	}
	return cross(a, b, a.prev) > 0 || cross(a, a.next, b) > 0
}

// middleInside reports whether the midpoint of a-b lies inside the polygon.
func middleInside(a, b *node) bool {
	p := a
	inside := false
	px, py := (a.x+b.x)/2, (a.y+b.y)/2
	for {
		if (p.y > py) != (p.next.y > py) && p.next.y != p.y &&
			px < (p.next.x-p.x)*(py-p.y)/(p.next.y-p.y)+p.x {
			inside = !inside
		}
		p = p.next
		if p == a {
			return inside
		}
	}
}

func sectorContainsSector(m, p *node) bool {
	return cross(m.prev, m, p.prev) > 0 && cross(p.next, m, m.next) > 0
}

func intersects(p1, q1, p2, q2 *node) bool {
	o1 := sign(cross(p1, q1, p2))
	o2 := sign(cross(p1, q1, q2))
	o3 := sign(cross(p2, q2, p1))
	o4 := sign(cross(p2, q2, q1))

	if o1 != o2 && o3 != o4 {
		return true
	}
	// collinear cases
	return (o1 == 0 && onSegment(p1, p2, q1)) ||
		(o2 == 0 && onSegment(p1, q2, q1)) ||
		(o3 == 0 && onSegment(p2, p1, q2)) ||
		(o4 == 0 && onSegment(p2, q1, q2))
}

// onSegment reports whether q lies in the bounding box of p-r.
func onSegment(p, q, r *node) bool {
	return q.x <= max(p.x, r.x) && q.x >= min(p.x, r.x) &&
		q.y <= max(p.y, r.y) && q.y >= min(p.y, r.y)
}

// cross is twice the signed area of a-b-c, positive for a left turn.
func cross(a, b, c *node) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// pointInTriangle is inclusive of the boundary; a-b-c must be counter-clockwise.
func pointInTriangle(ax, ay, bx, by, cx, cy, px, py float64) bool {
	return (cx-px)*(ay-py) >= (ax-px)*(cy-py) &&
		(ax-px)*(by-py) >= (bx-px)*(ay-py) &&
		(bx-px)*(cy-py) >= (cx-px)*(by-py)
}

func equals(a, b *node) bool {
	return a.x == b.x && a.y == b.y
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
