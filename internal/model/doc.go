// Package model turns declaration snapshots into model descriptors.
//
// It classifies field types against the closed set of scalar column kinds,
// extracts the eligible properties of a declaration in source order and
// assembles immutable descriptors whose equality is purely structural.
// Everything here is a pure function of the snapshot and is safe to run in
// parallel across declarations.
package model
