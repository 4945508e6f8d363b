// Package render flattens section trees and diff trees into ordered display
// lines.
//
// Every visited node gets hierarchy classes appended after its own class:
// "lvl_{level}_parent_{position}" when it has children,
// "lvl_{level}_child_{position}" always, and "d-none" below the first level.
// Leaf placeholders are expanded from the leaf section store and spliced in
// place, renumbered from the placeholder's line number.
package render
