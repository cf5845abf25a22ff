// Package detection normalizes raw object-detector output into a uniform
// list of pixel-space detections.
//
// Detector backends disagree on output layout. This package only looks at
// tensor shapes to decide what each output means:
//
//   - [batch, N, 4]  boxes, rows of [top, left, bottom, right] in 0-1 units
//   - [batch, N]     classes (first seen) then scores (second seen)
//   - [1]            number of valid rows
//
// The tensor index reported by the backend plays no part in the decision.
//
// # Error Handling
//
// Normalization never fails. Rows with missing fields, NaN values, scores
// below the threshold, or boxes that collapse to zero area after clamping are
// dropped one at a time. Class indexes without a label map to "Unknown".
package detection
