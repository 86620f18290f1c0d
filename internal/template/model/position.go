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

package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/asgardeo/templatizer/internal/workspace"
)

// ErrInvalidPosition is returned for a position that is not of the form "x,y".
var ErrInvalidPosition = errors.New("invalid position")

// FormatPosition renders a canvas position as "x,y", truncating both coordinates.
func FormatPosition(p workspace.Position) string {
	return strconv.FormatInt(int64(math.Trunc(p.X)), 10) + "," + strconv.FormatInt(int64(math.Trunc(p.Y)), 10)
}

// ParsePosition parses an "x,y" position. The empty string is the origin.
func ParsePosition(s string) (workspace.Position, error) {
	if strings.TrimSpace(s) == "" {
		return workspace.Position{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return workspace.Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return workspace.Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return workspace.Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return workspace.Position{X: x, Y: y}, nil
}

// ParseBends parses every bend point of a connection.
func ParseBends(bends []string) ([]workspace.Position, error) {
	if len(bends) == 0 {
		return nil, nil
	}
	points := make([]workspace.Position, 0, len(bends))
	for _, bend := range bends {
		p, err := ParsePosition(bend)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// FormatBends renders every bend point of a connection.
func FormatBends(points []workspace.Position) []string {
	if len(points) == 0 {
		return nil
	}
	bends := make([]string, 0, len(points))
	for _, p := range points {
		bends = append(bends, FormatPosition(p))
	}
	return bends
}
