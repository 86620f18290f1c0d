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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/templatizer/internal/system/config"
	"github.com/asgardeo/templatizer/internal/system/database/client"
	"github.com/asgardeo/templatizer/internal/system/database/model"
)

// LedgerDBName is the logical name of the run ledger database.
const LedgerDBName = "ledger"

// ErrDataSourceNotConfigured is returned when the requested database has no configured type.
var ErrDataSourceNotConfigured = errors.New("data source is not configured")

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
	// filePath is set for file backed databases.
	filePath string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	ledgerClient client.DBClientInterface
	ledgerMutex  sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case LedgerDBName:
		runtime := config.GetRuntime()
		return d.getOrInitClient(&d.ledgerClient, &d.ledgerMutex, runtime.Home, runtime.Config.Database.Ledger)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// Close closes every client opened by the provider.
func (d *DBProvider) Close() error {
	d.ledgerMutex.Lock()
	defer d.ledgerMutex.Unlock()

	if d.ledgerClient == nil {
		return nil
	}
	err := d.ledgerClient.Close()
	d.ledgerClient = nil
	if err != nil {
		return fmt.Errorf("failed to close %s client: %w", LedgerDBName, err)
	}
	return nil
}

// getOrInitClient gets or initializes a DB client with locking.
func (d *DBProvider) getOrInitClient(clientPtr *client.DBClientInterface, mutex *sync.RWMutex,
	home string, dataSource config.DataSource) (client.DBClientInterface, error) {
	mutex.RLock()
	if *clientPtr != nil {
		c := *clientPtr
		mutex.RUnlock()
		return c, nil
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if *clientPtr != nil {
		return *clientPtr, nil
	}

	dbConfig, err := getDBConfig(home, dataSource)
	if err != nil {
		return nil, err
	}

	if dbConfig.filePath != "" {
		if err := os.MkdirAll(filepath.Dir(dbConfig.filePath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory for %s: %w", dbConfig.filePath, err)
		}
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dataSource.Name, err)
	}

	db.SetMaxOpenConns(dataSource.MaxOpenConns)
	db.SetMaxIdleConns(dataSource.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database %s: %w (close error: %w)", dataSource.Name, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database %s: %w", dataSource.Name, err)
	}

	*clientPtr = client.NewDBClient(model.NewDB(db), dbConfig.driverName)
	return *clientPtr, nil
}

// getDBConfig returns the driver name and DSN for the provided data source.
func getDBConfig(home string, dataSource config.DataSource) (dbConfig, error) {
	var cfg dbConfig

	switch dataSource.Type {
	case model.DBTypePostgres:
		cfg.driverName = model.DBTypePostgres
		cfg.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
	case model.DBTypeSQLite:
		cfg.driverName = model.DBTypeSQLite
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		path := dataSource.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(home, path)
		}
		cfg.dsn = path + options
		cfg.filePath = path
	case "":
		return cfg, ErrDataSourceNotConfigured
	default:
		return cfg, fmt.Errorf("unsupported data source type: %s", dataSource.Type)
	}

	return cfg, nil
}
