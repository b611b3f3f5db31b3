package txml

// Metadata describes a template. Every field is optional.
type Metadata struct {
	Author      string
	Date        string
	Version     string
	Description string
}

// Variable is a substitution variable declared in a document.
// An empty Value means the value must be asked for.
type Variable struct {
	Name  string
	Value string
}

// File is a file node. Content holds the captured body verbatim; it is
// dedented and unescaped only when the file is instantiated.
type File struct {
	Name      string
	Extension string
	Command   string
	Content   string
}

// FileName returns the on-disk name for the file when instantiated as name
func (f *File) FileName(name string) string {
	if f.Extension == "" {
		return name
	}
	return name + "." + f.Extension
}

// Directory is a directory node with its hooks and ordered children
type Directory struct {
	Name        string
	InCommand   string
	OutCommand  string
	Files       []*File
	Directories []*Directory
}

// AddFile appends a child file
func (d *Directory) AddFile(f *File) {
	d.Files = append(d.Files, f)
}

// AddDirectory appends a child directory
func (d *Directory) AddDirectory(child *Directory) {
	d.Directories = append(d.Directories, child)
}

// Structure is the root of a parsed template
type Structure struct {
	Files       []*File
	Directories []*Directory
	Metadata    Metadata
	Renamable   bool
}

// NewStructure returns an empty, renamable structure
func NewStructure() *Structure {
	return &Structure{Renamable: true}
}

// AddFile appends a top-level file
func (s *Structure) AddFile(f *File) {
	s.Files = append(s.Files, f)
}

// AddDirectory appends a top-level directory
func (s *Structure) AddDirectory(d *Directory) {
	s.Directories = append(s.Directories, d)
}

// ChildCount returns the number of direct children (files and directories)
func (s *Structure) ChildCount() int {
	return len(s.Files) + len(s.Directories)
}

// parent is implemented by the nodes that can hold children
type parent interface {
	AddFile(f *File)
	AddDirectory(d *Directory)
}
