// Package issue assembles the Markdown issue for a plan.
//
// A plan identifier has the form <class>.<module>. The generator loads the
// global config, the optional module document, the class roster and the
// plan, merges their fragments (see package fragment) and renders:
//
//	header
//
//	week 1
//
//	week N
//
//	footer
//
// Blocks are separated by one blank line. The result is written to
// <outDir>/<id>.issue.md, replacing any previous file.
package issue
