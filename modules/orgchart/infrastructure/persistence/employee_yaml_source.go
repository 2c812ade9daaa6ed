package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/ports"
	"github.com/jacksonlee411/orgchart/modules/orgchart/domain/types"
	"gopkg.in/yaml.v3"
)

const hierarchyDocumentVersion = 1

type hierarchyDocument struct {
	Version int          `yaml:"version"`
	Root    *employeeDoc `yaml:"root"`
}

type employeeDoc struct {
	ID           int           `yaml:"id"`
	Name         string        `yaml:"name"`
	Subordinates []employeeDoc `yaml:"subordinates,omitempty"`
}

// EmployeeYAMLSource reads a chart from a YAML document of the form
//
//	version: 1
//	root:
//	  id: 1
//	  name: John Smith
//	  subordinates:
//	    - id: 2
//	      name: Margot Donald
type EmployeeYAMLSource struct {
	path string
}

func NewEmployeeYAMLSource(path string) ports.HierarchySource {
	return &EmployeeYAMLSource{path: path}
}

func (s *EmployeeYAMLSource) LoadHierarchy(_ context.Context) (types.Employee, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return types.Employee{}, err
	}
	root, err := DecodeHierarchyYAML(bytes.NewReader(b))
	if err != nil {
		return types.Employee{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return root, nil
}

func DecodeHierarchyYAML(r io.Reader) (types.Employee, error) {
	var doc hierarchyDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return types.Employee{}, ports.ErrHierarchyEmpty
		}
		return types.Employee{}, err
	}
	if doc.Version != hierarchyDocumentVersion {
		return types.Employee{}, fmt.Errorf("%w: %d", ports.ErrHierarchyUnsupported, doc.Version)
	}
	if doc.Root == nil {
		return types.Employee{}, ports.ErrHierarchyEmpty
	}
	return doc.Root.toEmployee(), nil
}

func EncodeHierarchyYAML(w io.Writer, root types.Employee) error {
	doc := hierarchyDocument{Version: hierarchyDocumentVersion, Root: employeeDocFrom(root)}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func (d employeeDoc) toEmployee() types.Employee {
	e := types.Employee{ID: d.ID, Name: d.Name}
	for _, s := range d.Subordinates {
		e.Subordinates = append(e.Subordinates, s.toEmployee())
	}
	return e
}

func employeeDocFrom(e types.Employee) *employeeDoc {
	d := &employeeDoc{ID: e.ID, Name: e.Name}
	for _, s := range e.Subordinates {
		d.Subordinates = append(d.Subordinates, *employeeDocFrom(s))
	}
	return d
}
