// Package draftclaim provides a local, offline-first patent claims
// verification assistant. It reads invention disclosures and annotated
// claim documents, turns the reviewer comments embedded in the claims
// into verification questions, answers them with a locally hosted
// language model under human approval, and exports the approved results
// as Word reports.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., docx/, ollama/, sqlite/).
package draftclaim
