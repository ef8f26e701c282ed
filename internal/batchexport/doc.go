// Package batchexport holds the frame range and naming parameters of an
// unattended export run.
//
// State stores raw values only. Frame bounds are not validated here and the
// Unset sentinel is resolved by the export consumer, typically through
// Job.Range with the active sequence's in/out points.
package batchexport
