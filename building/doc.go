// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package building assembles minimal single-zone test buildings for a
// thermal simulation engine.
//
// A test building is one zone bounded by one exterior wall, optionally
// pierced by a centred window, with an infiltration flow and optional heater
// and luminaire loads. Every quantity the engine may read or drive is
// registered as a state variable.
//
// # Entry points
//
//   - GetSingleZoneTestBuilding: builds a fresh simmodel.Model and
//     stateregistry.Registry from Options.
//   - Assemble: writes the same entities into caller-owned collaborators
//     through the Model and StateRegistry interfaces.
//   - AddHeater / AddLuminaire: register one more load on an assembled
//     building. Each call is additive.
//
// # Failure model
//
// All options are validated before the first entity is created, so a
// validation error leaves the model and registry untouched. Errors raised by
// the collaborators once creation has begun are returned as
// *CollaboratorError and nothing already committed is rolled back.
//
// Callers must serialise assembly and registration calls against the same
// model and registry.
package building
