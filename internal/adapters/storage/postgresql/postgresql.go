package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
	"freshroute/internal/domain/apperrors"
	"freshroute/internal/domain/models"
)

// Adapter implements the StoragePort interface for PostgreSQL
type Adapter struct {
	db *sql.DB
}

// New creates a new PostgreSQL adapter
func New(cfg config.DatabaseConfig) (ports.StoragePort, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Adapter{
		db: db,
	}, nil
}

// CreateShipment stores a new shipment record
func (a *Adapter) CreateShipment(ctx context.Context, shipment models.Shipment) error {
	query := `INSERT INTO shipments (id, produce_name, quantity, decay_constant, start_location, harvest_timestamp, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := a.db.ExecContext(ctx, query,
		shipment.ID, shipment.ProduceName, shipment.Quantity, shipment.DecayConstant,
		shipment.StartLocation, shipment.HarvestTimestamp, shipment.Status, shipment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", err)
	}

	return nil
}

// GetShipment retrieves one shipment by id
func (a *Adapter) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	query := `SELECT id, produce_name, quantity, decay_constant, start_location, harvest_timestamp, status, created_at
			  FROM shipments
			  WHERE id = $1`

	var shipment models.Shipment
	err := a.db.QueryRowContext(ctx, query, id).Scan(
		&shipment.ID, &shipment.ProduceName, &shipment.Quantity, &shipment.DecayConstant,
		&shipment.StartLocation, &shipment.HarvestTimestamp, &shipment.Status, &shipment.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
		}
		return nil, err
	}

	return &shipment, nil
}

// UpdateShipmentStatus transitions a shipment's lifecycle status
func (a *Adapter) UpdateShipmentStatus(ctx context.Context, id string, status models.ShipmentStatus) error {
	query := `UPDATE shipments SET status = $2 WHERE id = $1`

	result, err := a.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, id)
	}

	return nil
}

// ListMarkets returns the market catalog in stable insertion order
func (a *Adapter) ListMarkets(ctx context.Context) ([]models.Market, error) {
	query := `SELECT id, name, distance_km, prices, demand_level, lat, lon
			  FROM markets
			  ORDER BY id`

	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []models.Market
	for rows.Next() {
		var market models.Market
		var pricesJSON []byte
		err := rows.Scan(&market.ID, &market.Name, &market.DistanceKm, &pricesJSON,
			&market.DemandLevel, &market.Lat, &market.Lon)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(pricesJSON, &market.Prices); err != nil {
			return nil, fmt.Errorf("failed to decode prices for market %q: %w", market.Name, err)
		}
		markets = append(markets, market)
	}

	return markets, rows.Err()
}

// ReplaceMarkets clears the market catalog and installs a new one
func (a *Adapter) ReplaceMarkets(ctx context.Context, markets []models.Market) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM markets`); err != nil {
		return err
	}

	query := `INSERT INTO markets (name, distance_km, prices, demand_level, lat, lon)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, market := range markets {
		pricesJSON, err := json.Marshal(market.Prices)
		if err != nil {
			return err
		}
		_, err = stmt.ExecContext(ctx, market.Name, market.DistanceKm, pricesJSON,
			market.DemandLevel, market.Lat, market.Lon)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close closes the storage connection
func (a *Adapter) Close() error {
	return a.db.Close()
}
