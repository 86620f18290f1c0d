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

// Package rules converts the XML rule annotations of attribute-updating processors to and from the
// template rule set.
package rules

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/asgardeo/templatizer/internal/template/model"
)

const rootElement = "criteria"

type criteriaXML struct {
	XMLName        xml.Name
	FlowFilePolicy string    `xml:"flowFilePolicy,omitempty"`
	Rules          []ruleXML `xml:"rules"`
}

type ruleXML struct {
	Actions    []actionXML    `xml:"actions"`
	Conditions []conditionXML `xml:"conditions"`
	ID         string         `xml:"id"`
	Name       string         `xml:"name"`
}

type conditionXML struct {
	Expression string `xml:"expression"`
	ID         string `xml:"id"`
}

type actionXML struct {
	Attribute string `xml:"attribute"`
	ID        string `xml:"id"`
	Value     string `xml:"value"`
}

// Decode parses an annotation into a rule set. Ids are dropped. An empty annotation yields nil.
// When two actions of a rule set the same attribute the last one wins.
func Decode(annotation string) (*model.RuleSet, error) {
	if strings.TrimSpace(annotation) == "" {
		return nil, nil
	}

	var criteria criteriaXML
	if err := xml.Unmarshal([]byte(annotation), &criteria); err != nil {
		return nil, fmt.Errorf("failed to decode rule annotation: %w", err)
	}

	ruleSet := &model.RuleSet{FlowFilePolicy: criteria.FlowFilePolicy}
	for _, r := range criteria.Rules {
		rule := model.Rule{Name: r.Name}
		for _, c := range r.Conditions {
			rule.Conditions = append(rule.Conditions, c.Expression)
		}
		if len(r.Actions) > 0 {
			rule.Actions = make(map[string]string, len(r.Actions))
			for _, a := range r.Actions {
				rule.Actions[a.Attribute] = a.Value
			}
		}
		ruleSet.Rules = append(ruleSet.Rules, rule)
	}
	return ruleSet, nil
}

// Encode renders a rule set as an annotation, assigning a fresh id to every rule, condition and action.
// Actions are written in attribute order. A nil rule set yields the empty string.
func Encode(ruleSet *model.RuleSet) (string, error) {
	if ruleSet == nil {
		return "", nil
	}

	criteria := criteriaXML{
		XMLName:        xml.Name{Local: rootElement},
		FlowFilePolicy: ruleSet.FlowFilePolicy,
	}
	for _, rule := range ruleSet.Rules {
		r := ruleXML{ID: uuid.NewString(), Name: rule.Name}
		for _, expression := range rule.Conditions {
			r.Conditions = append(r.Conditions, conditionXML{ID: uuid.NewString(), Expression: expression})
		}
		attributes := make([]string, 0, len(rule.Actions))
		for attribute := range rule.Actions {
			attributes = append(attributes, attribute)
		}
		sort.Strings(attributes)
		for _, attribute := range attributes {
			r.Actions = append(r.Actions, actionXML{
				ID:        uuid.NewString(),
				Attribute: attribute,
				Value:     rule.Actions[attribute],
			})
		}
		criteria.Rules = append(criteria.Rules, r)
	}

	out, err := xml.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("failed to encode rule annotation: %w", err)
	}
	return string(out), nil
}
