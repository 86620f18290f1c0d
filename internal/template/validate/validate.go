/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package validate checks a template set for structural problems before any node is created.
package validate

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/asgardeo/templatizer/internal/dependency"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// ErrInvalidTemplate is wrapped by every problem reported by Validate.
var ErrInvalidTemplate = errors.New("invalid template")

// TemplateSource lists and looks up templates by file name.
type TemplateSource interface {
	Get(fileName string) (*model.Template, bool)
	FileNames() []string
}

// Validate reports every structural problem of the set at once. Use multierr.Errors to split the result.
func Validate(set TemplateSource, root string) error {
	if _, ok := set.Get(root); !ok {
		return fmt.Errorf("%w: root template %s is missing", ErrInvalidTemplate, root)
	}

	v := &validator{set: set, ids: map[string]string{}, referencedBy: map[string]string{}}
	for _, fileName := range set.FileNames() {
		tpl, _ := set.Get(fileName)
		v.template(fileName, tpl)
	}
	if parent, ok := v.referencedBy[root]; ok {
		v.addf(root, "root template is also referenced by %s", parent)
	}
	return v.err
}

type siblingKey struct {
	name string
	kind workspace.NodeKind
}

type validator struct {
	set          TemplateSource
	ids          map[string]string
	referencedBy map[string]string
	err          error
}

func (v *validator) addf(fileName, format string, args ...any) {
	v.err = multierr.Append(v.err, fmt.Errorf("%w: %s: %s", ErrInvalidTemplate, fileName, fmt.Sprintf(format, args...)))
}

func (v *validator) template(fileName string, tpl *model.Template) {
	deps, err := dependency.FromTree(tpl.Dependencies)
	if err != nil {
		v.addf(fileName, "%v", err)
		deps = dependency.NewVocabulary()
	}

	siblings := map[siblingKey]string{}
	checkName := func(id, name string, kind workspace.NodeKind) {
		if name == "" {
			return
		}
		key := siblingKey{name: name, kind: kind}
		if other, ok := siblings[key]; ok {
			v.addf(fileName, "%s %s and %s are both named %q", kind, other, id, name)
			return
		}
		siblings[key] = id
	}
	checkID := func(id string) {
		if id == "" {
			v.addf(fileName, "an element has no id")
			return
		}
		if other, ok := v.ids[id]; ok {
			v.addf(fileName, "id %s is also used in %s", id, other)
			return
		}
		v.ids[id] = fileName
	}

	for _, c := range tpl.Controllers {
		checkID(c.ID)
		checkName(c.ID, c.Name, workspace.KindControllerService)
		if _, err := deps.Resolve(c.Type); err != nil {
			v.addf(fileName, "controller %s: %v", c.ID, err)
		}
	}

	for i := range tpl.Components {
		e := &tpl.Components[i]
		kind := e.Kind()
		checkID(e.ID)
		if _, err := model.ParsePosition(e.Position); err != nil {
			v.addf(fileName, "element %s: %v", e.ID, err)
		}

		switch kind {
		case workspace.KindProcessor:
			if _, err := deps.Resolve(e.KindName()); err != nil {
				v.addf(fileName, "element %s: %v", e.ID, err)
			}
		case workspace.KindInputPort, workspace.KindOutputPort, workspace.KindRemoteProcessGroup:
			checkName(e.ID, e.Name, kind)
		case workspace.KindProcessGroup:
			checkName(e.ID, e.Name, kind)
			v.reference(fileName, e)
		}

		for j := range e.Inputs {
			v.input(fileName, tpl, e, &e.Inputs[j])
		}
	}
}

func (v *validator) reference(fileName string, group *model.Element) {
	if group.Template == "" {
		return
	}
	if _, ok := v.set.Get(group.Template); !ok {
		v.addf(fileName, "group %s references missing template %s", group.ID, group.Template)
		return
	}
	if other, ok := v.referencedBy[group.Template]; ok {
		v.addf(fileName, "template %s is referenced by group %s and by %s", group.Template, group.ID, other)
		return
	}
	v.referencedBy[group.Template] = fileName + "#" + group.ID
}

func (v *validator) input(fileName string, tpl *model.Template, target *model.Element, input *model.InputConnection) {
	source, ok := tpl.FindElement(input.Source)
	if !ok {
		v.addf(fileName, "element %s has an input from unknown element %s", target.ID, input.Source)
		return
	}
	if source.Kind() == workspace.KindLabel || target.Kind() == workspace.KindLabel {
		v.addf(fileName, "labels cannot be connected (%s -> %s)", source.ID, target.ID)
	}
	ref, err := input.ResolveSourceRef(source.Kind())
	if err != nil {
		v.addf(fileName, "element %s: %v", target.ID, err)
	} else if source.Kind() == workspace.KindProcessor && len(ref.Relationships) == 0 {
		v.addf(fileName, "input of %s from processor %s selects no relationship", target.ID, source.ID)
	} else if source.Kind() == workspace.KindProcessGroup && !v.hasPort(source, workspace.KindOutputPort, ref.Port) {
		v.addf(fileName, "group %s has no output port %q", source.ID, ref.Port)
	}
	switch target.Kind() {
	case workspace.KindProcessGroup, workspace.KindRemoteProcessGroup:
		if input.ToPort == "" {
			v.addf(fileName, "input of %s from %s does not name a port", target.ID, source.ID)
		} else if target.Kind() == workspace.KindProcessGroup &&
			!v.hasPort(target, workspace.KindInputPort, input.ToPort) {
			v.addf(fileName, "group %s has no input port %q", target.ID, input.ToPort)
		}
	default:
		if input.ToPort != "" {
			v.addf(fileName, "input of %s names port %q but %s has no ports", target.ID, input.ToPort, target.ID)
		}
	}
	if _, err := model.ParseBends(input.Bends); err != nil {
		v.addf(fileName, "input of %s: %v", target.ID, err)
	}
}

// hasPort reports whether the template of a group declares the named port. Groups whose template is
// missing are reported elsewhere and pass here.
func (v *validator) hasPort(group *model.Element, kind workspace.NodeKind, name string) bool {
	child, ok := v.set.Get(group.Template)
	if !ok {
		return true
	}
	for i := range child.Components {
		if child.Components[i].Kind() == kind && child.Components[i].Name == name {
			return true
		}
	}
	return false
}
