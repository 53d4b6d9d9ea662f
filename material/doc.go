// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package material resolves the closed set of test materials into the
// physical properties of a single construction layer.
//
// A Selector names one of four material kinds together with a thickness.
// Resolve turns it into a Layer using a fixed table of conductivity,
// density and specific heat per kind. Only the thickness varies between
// calls. Optical properties (emissivity, solar absorptance) are left unset
// here; they are building-wide options applied by the construction package.
package material
