// Package fixture loads CUE-described data into the store model.
//
// schema.cue defines the accepted shape of events and of the demonstration
// seed; seed.cue holds the seed itself. Both are embedded. Event imports are
// user-supplied CUE (or plain JSON, which is valid CUE) unified with #Import,
// so defaults such as status "draft" and type "general" come from the schema
// and closed definitions reject unknown fields.
package fixture
