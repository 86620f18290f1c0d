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

// Package log provides a zap backed structured logger for the templatizer components.
package log

import (
	"errors"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/asgardeo/templatizer/internal/system/constants"
)

var (
	logger *zap.Logger
	level  = zap.NewAtomicLevel()
	once   sync.Once
	mu     sync.RWMutex
)

// GetLogger returns the process wide logger, initializing it on first use.
func GetLogger() *zap.Logger {
	once.Do(func() {
		logLevel := os.Getenv(constants.LogLevelEnvironmentVariable)
		if logLevel == "" {
			logLevel = constants.DefaultLogLevel
		}
		if err := initLogger(logLevel); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	})

	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// InitLogger initializes the logger with the given level, replacing any logger created earlier.
func InitLogger(logLevel string) error {
	var err error
	once.Do(func() {
		err = initLogger(logLevel)
	})
	if err != nil {
		return err
	}
	return SetLevel(logLevel)
}

// SetLevel changes the level of the process wide logger.
func SetLevel(logLevel string) error {
	parsed, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return errors.New("error parsing log level: " + err.Error())
	}
	level.SetLevel(parsed)
	return nil
}

// ReplaceLogger swaps the process wide logger. Intended for tests.
func ReplaceLogger(l *zap.Logger) {
	once.Do(func() {})

	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Sync flushes any buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if logger != nil {
		_ = logger.Sync()
	}
}

func initLogger(logLevel string) error {
	parsed, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return errors.New("error parsing log level: " + err.Error())
	}
	level.SetLevel(parsed)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		level,
	)

	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(core, zap.AddCaller())
	return nil
}
