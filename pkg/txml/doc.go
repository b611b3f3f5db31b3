// Package txml implements the TXML template dialect: reading, parsing,
// instantiating and producing TXML documents.
//
// A document describes a tree of directories and files, optional metadata,
// variables and creation hooks:
//
//	<Root renamable="true">
//	    <Metadata author="me" description="Go module"/>
//	    <Variable name="MODULE"/>
//	    <Directory name="app" in_command="go mod init ${MODULE}">
//	        <File name="main" extension="go">
//	            package main
//	        </File>
//	    </Directory>
//	</Root>
//
// # Pipeline
//
//   - ResolveVariables collects every Variable of the document and replaces
//     each ${name} marker textually, asking a ValueSource for the variables
//     declared without a value
//   - Parse drives a Reader over the substituted text and builds a Structure
//     with an explicit directory stack
//   - Engine.InstantiateWithName materializes the Structure on a filesystem,
//     running hooks after each node is created
//
// File bodies are stored verbatim. Dedent and Unescape are applied when a
// file is written, Escape when it is rendered back with ToMarkup.
//
// # Failure model
//
// Parse errors abort the parse and no partial tree is returned. During
// instantiation an existing directory or file is skipped, and a failing hook
// is reported to the Reporter without stopping the traversal. Only failing
// to create a directory or write a file aborts an instantiation.
package txml
