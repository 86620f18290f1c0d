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

// Package store reads and writes template sets, one YAML file per scope.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/asgardeo/templatizer/internal/system/constants"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/template/model"
)

// ErrNoTemplates is returned when a directory holds no template files.
var ErrNoTemplates = errors.New("no template files found")

// TemplateSet holds loaded templates keyed by file name.
type TemplateSet map[string]*model.Template

// Get returns the template stored under the given file name.
func (s TemplateSet) Get(fileName string) (*model.Template, bool) {
	t, ok := s[fileName]
	return t, ok
}

// FileNames returns the file names of the set in sorted order.
func (s TemplateSet) FileNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads every template file of a directory. Other files and sub-directories are skipped.
func Load(dir string) (TemplateSet, error) {
	logger := log.GetLogger().With(zap.String(log.LoggerKeyComponentName, "TemplateStore"))
	logger.Debug("Loading templates", zap.String("directory", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory %s: %w", dir, err)
	}

	set := TemplateSet{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.TemplateFileExtension) {
			logger.Debug("Skipping non template entry", zap.String("fileName", entry.Name()),
				zap.Bool("isDir", entry.IsDir()))
			continue
		}

		path := filepath.Clean(filepath.Join(dir, entry.Name()))
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", path, err)
		}

		tpl, err := Unmarshal(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
		}
		if tpl.Name == "" {
			tpl.Name = strings.TrimSuffix(entry.Name(), constants.TemplateFileExtension)
		}
		set[entry.Name()] = tpl
		logger.Debug("Template loaded", zap.String(log.LoggerKeyTemplate, entry.Name()),
			zap.Int("components", len(tpl.Components)), zap.Int("controllers", len(tpl.Controllers)))
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTemplates, dir)
	}
	return set, nil
}

// Write stores every template under its file name, creating the directory if needed.
func Write(dir string, templates []*model.Template) error {
	logger := log.GetLogger().With(zap.String(log.LoggerKeyComponentName, "TemplateStore"))

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create template directory %s: %w", dir, err)
	}
	for _, tpl := range templates {
		content, err := Marshal(tpl)
		if err != nil {
			return fmt.Errorf("failed to encode template %s: %w", tpl.Name, err)
		}
		path := filepath.Join(dir, tpl.FileName())
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return fmt.Errorf("failed to write template %s: %w", path, err)
		}
		logger.Debug("Template written", zap.String(log.LoggerKeyTemplate, path))
	}
	return nil
}

// Unmarshal decodes one template. Unknown fields are rejected.
func Unmarshal(content []byte) (*model.Template, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	var tpl model.Template
	if err := decoder.Decode(&tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Marshal encodes one template with a blank line between top level sections and between the entries of
// top level lists.
func Marshal(tpl *model.Template) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(tpl); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return spaceSections(buf.Bytes()), nil
}

func spaceSections(content []byte) []byte {
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	out := make([]string, 0, len(lines)*2)
	for i, line := range lines {
		if i > 0 {
			previous := lines[i-1]
			topLevelKey := line != "" && line[0] != ' ' && !strings.HasPrefix(line, "- ")
			topLevelItem := strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "  - ")
			afterKey := previous != "" && previous[0] != ' ' && strings.HasSuffix(previous, ":")
			if topLevelKey || (topLevelItem && !afterKey) {
				out = append(out, "")
			}
		}
		out = append(out, line)
	}
	return []byte(strings.Join(out, "\n") + "\n")
}
