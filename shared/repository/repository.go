package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"todoapp/infras/otel"
	"todoapp/infras/postgres"
	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/logger"
)

var (
	errRequiredFilter = errors.New("required filter")
	errUnknownColumn  = errors.New("unknown sort column")
)

// Repository is a generic single-table store over T's db tags. Mutations are single
// statements with RETURNING, so "does it exist" and "change it" are one round trip.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	columns []string
}

func NewRepository[T any](entityName, tableName string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:      dbConnection,
		otel:    otl,
		table:   tableName,
		entity:  entityName,
		columns: getColumns(reflect.TypeOf(zero)),
	}
}

// Insert stores model and returns the row as persisted.
func (repo *Repository[T]) Insert(ctx context.Context, model T) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	placeholders := make([]string, 0, len(repo.columns))
	for _, col := range repo.columns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		repo.table,
		strings.Join(repo.columns, ", "),
		strings.Join(placeholders, ", "),
		repo.selectColumns(),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var inserted T

	prepare, err := repo.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return inserted, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &inserted, model); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return inserted, fmt.Errorf("failed to insert data (%s): %w", repo.entity, err)
	}

	return inserted, nil
}

// GetAll lists rows matching filter. Zero Page/Limit means no pagination; without SortBy the
// order is whatever the store returns.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	var ordering, pagination string

	page := params.Page
	limit := params.Limit

	if page > 0 && limit > 0 {
		args["limit"] = limit
		args["offset"] = (page - 1) * limit

		pagination = "LIMIT :limit OFFSET :offset"
	} else if limit > 0 {
		args["limit"] = limit

		pagination = "LIMIT :limit"
	}

	if params.SortBy != "" {
		if !slices.Contains(repo.columns, params.SortBy) {
			scope.TraceError(errUnknownColumn)

			return nil, fmt.Errorf("%w (%s): %s", errUnknownColumn, repo.entity, params.SortBy)
		}

		sortDir := dto.SortDirAsc
		if params.SortDir == dto.SortDirDesc {
			sortDir = dto.SortDirDesc
		}

		ordering = fmt.Sprintf("ORDER BY %s.%s %s", repo.table, params.SortBy, sortDir)
	}

	query := strings.Join(strings.Fields(fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.selectColumns(), repo.table, where, ordering, pagination)), " ")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	models := []T{}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entity, err)
	}

	return models, nil
}

// Update sets the columns in mod on the row matching filter and returns it.
// found is false when no row matched.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (updated T, found bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return updated, false, errRequiredFilter
	}

	updateField := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		updateField = append(updateField, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s RETURNING %s", repo.table, strings.Join(updateField, ", "), where, repo.selectColumns())
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, mod)

	return repo.queryOne(ctx, scope, query, args, "update")
}

// Delete removes the row matching filter and returns it. found is false when no row matched.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (deleted T, found bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return deleted, false, errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s RETURNING %s", repo.table, where, repo.selectColumns())
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	return repo.queryOne(ctx, scope, query, args, "delete")
}

func (repo *Repository[T]) queryOne(ctx context.Context, scope otel.Scope, query string, args map[string]any, action string) (T, bool, error) {
	var model T

	prepare, err := repo.db.Write.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to prepare statement (%s): %w", repo.entity, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, false, fmt.Errorf("failed to %s data (%s): %w", action, repo.entity, err)
	}

	return model, true, nil
}

func (repo *Repository[T]) selectColumns() string {
	columns := make([]string, 0, len(repo.columns))
	for _, col := range repo.columns {
		columns = append(columns, fmt.Sprintf("%s.%s", repo.table, col))
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return "WHERE " + where, args
}

func getColumns(reflectType reflect.Type) []string {
	columns := []string{}

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(field.Type)...)

			continue
		}

		if dbTag := field.Tag.Get("db"); dbTag != "" && dbTag != "-" {
			columns = append(columns, dbTag)
		}
	}

	return columns
}
