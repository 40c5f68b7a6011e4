package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type deviceListQuery struct {
	dataQ    string
	dataArgs []any
}

func buildDeviceListQuery(
	ctx context.Context,
	userID uuid.UUID,
	filters map[string]any,
) (deviceListQuery, error) {
	const op = "devices.buildDeviceListQuery.repo"

	span, _ := opentracing.StartSpanFromContext(ctx, op)
	defer span.Finish()

	query := sq.Select(
		"d.id",
		"d.user_id",
		"d.name",
		"d.device_type",
		"d.os",
		"d.browser",
		"d.user_agent",
		"d.ip",
		"d.location",
		"d.last_active",
		"d.created_at",
	).
		From("devices d").
		Where(sq.Eq{"d.user_id": userID}).
		OrderBy("d.last_active DESC").
		PlaceholderFormat(sq.Dollar)

	if deviceType, ok := filters["device_type"].(string); ok {
		query = query.Where(sq.Eq{"d.device_type": deviceType})
	}

	if browser, ok := filters["browser"].(string); ok {
		query = query.Where(sq.Eq{"d.browser": browser})
	}

	dataSql, dataArgs, err := query.ToSql()
	if err != nil {
		span.SetTag("error", true)
		zap.L().Error("failed to build data query", zap.String("op", op), zap.Error(err))
		return deviceListQuery{}, err
	}

	return deviceListQuery{
		dataQ:    dataSql,
		dataArgs: dataArgs,
	}, nil
}
