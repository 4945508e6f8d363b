// Package section builds foldable section trees from code surface token
// streams.
//
// Each Newline closes a display line. A SectionHeading token turns the line it
// appears on into a fold header; the SectionContentStart/End pair that follows
// brackets the header's content. Headings receive the class "{id}-heading"
// (plus "{parent}-content" when nested) and content lines receive
// "{id}-content" of their innermost open section only.
//
// Sections that would exceed the configured depth or line count are not
// built. Their tokens are moved to a leaf.Store and the heading receives a
// single placeholder child whose text is the store index.
package section
