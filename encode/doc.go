// Package encode renders cache snapshots and router states.
//
// The text format draws one line per node, indented by depth:
//
//	/ READY "root"
//	  children/about READY "about" head="About"
//	  modal/login LAZY
//
// The YAML and JSON formats write the nested document form of a snapshot
// (see [cache.Document]), which [parse.Snapshot] reads back.
package encode
