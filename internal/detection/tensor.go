package detection

import "math"

// Tensor is one raw output of a detector inference call.
//
// Data holds the values in row-major order for Shape. Only the first batch
// entry is ever read.
type Tensor struct {
	Index int       `json:"index"`
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// Rank returns the number of dimensions in the tensor shape.
func (t Tensor) Rank() int {
	return len(t.Shape)
}

// Role is the semantic meaning assigned to an output tensor.
type Role int

const (
	RoleUnknown Role = iota
	RoleBoxes
	RoleClasses
	RoleScores
	RoleCount
)

func (r Role) String() string {
	switch r {
	case RoleBoxes:
		return "boxes"
	case RoleClasses:
		return "classes"
	case RoleScores:
		return "scores"
	case RoleCount:
		return "count"
	default:
		return "unknown"
	}
}

// Outputs groups the tensors of one inference call by role. Nil fields were
// not present in the call.
type Outputs struct {
	Boxes   *Tensor
	Classes *Tensor
	Scores  *Tensor
	Count   *Tensor
}

// Classify assigns a role to each tensor by its shape. Tensors are visited in
// slice order and the first tensor to qualify for a role keeps it:
//
//   - rank 3 with a last dimension of 4 → boxes
//   - rank 2 → classes, then scores
//   - rank 1 → count
//
// Everything else, including surplus tensors of an already filled role, is
// ignored. The returned roles slice is parallel to tensors.
func Classify(tensors []Tensor) (Outputs, []Role) {
	var out Outputs
	roles := make([]Role, len(tensors))

	for i := range tensors {
		t := &tensors[i]
		switch {
		case t.Rank() == 3 && t.Shape[2] == 4 && out.Boxes == nil:
			out.Boxes = t
			roles[i] = RoleBoxes
		case t.Rank() == 2 && out.Classes == nil:
			out.Classes = t
			roles[i] = RoleClasses
		case t.Rank() == 2 && out.Scores == nil:
			out.Scores = t
			roles[i] = RoleScores
		case t.Rank() == 1 && out.Count == nil:
			out.Count = t
			roles[i] = RoleCount
		}
	}

	return out, roles
}

// count returns the number of detections to read. The count tensor wins when
// present and usable, otherwise the second dimension of the boxes tensor.
// Either way the result never exceeds the rows the boxes tensor holds.
func (o Outputs) count() int {
	if o.Boxes == nil {
		return 0
	}
	rows := len(o.Boxes.Data) / 4
	if len(o.Boxes.Shape) > 1 && o.Boxes.Shape[1] >= 0 {
		rows = min(rows, o.Boxes.Shape[1])
	}

	if o.Count != nil && len(o.Count.Data) > 0 {
		v := float64(o.Count.Data[0])
		if !math.IsNaN(v) && v >= 0 {
			if v >= float64(rows) {
				return rows
			}
			return int(v)
		}
	}
	return rows
}

// value returns Data[i] for a rank-2 tensor, or false if i is out of range.
func value(t *Tensor, i int) (float64, bool) {
	if t == nil || i < 0 || i >= len(t.Data) {
		return 0, false
	}
	if len(t.Shape) > 1 && i >= t.Shape[1] {
		return 0, false
	}
	return float64(t.Data[i]), true
}

// box returns the four [top, left, bottom, right] values of row i.
func box(t *Tensor, i int) ([4]float64, bool) {
	var b [4]float64
	if t == nil || i < 0 || (i+1)*4 > len(t.Data) {
		return b, false
	}
	if len(t.Shape) > 1 && i >= t.Shape[1] {
		return b, false
	}
	for k := 0; k < 4; k++ {
		b[k] = float64(t.Data[i*4+k])
	}
	return b, true
}
