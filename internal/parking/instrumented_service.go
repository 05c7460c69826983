package parking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedService wraps Service with traces and metrics for every
// ledger-facing operation.
type InstrumentedService struct {
	*Service
	telemetry *TelemetryProvider

	// Metrics
	entryOperations   metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	revenueCounter    metric.Float64Counter
	operationDuration metric.Float64Histogram
	capacityGauge     metric.Int64UpDownCounter
}

func NewInstrumentedService(svc *Service, telemetry *TelemetryProvider) (*InstrumentedService, error) {
	meter := telemetry.Meter()

	entryOperations, err := meter.Int64Counter("parking_entry_operations_total",
		metric.WithDescription("Total number of vehicle entry attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("parking_exit_operations_total",
		metric.WithDescription("Total number of vehicle exit attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_open_records",
		metric.WithDescription("Current number of open parking records"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueCounter, err := meter.Float64Counter("parking_revenue_total",
		metric.WithDescription("Sum of charges collected at exit"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("parking_operation_duration_seconds",
		metric.WithDescription("Duration of parking ledger operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	capacityGauge, err := meter.Int64UpDownCounter("parking_capacity_slots",
		metric.WithDescription("Configured number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	is := &InstrumentedService{
		Service:           svc,
		telemetry:         telemetry,
		entryOperations:   entryOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		revenueCounter:    revenueCounter,
		operationDuration: operationDuration,
		capacityGauge:     capacityGauge,
	}

	capacityGauge.Add(context.Background(), int64(svc.Capacity()))
	// Account for records restored from a snapshot before instrumentation.
	occupancyGauge.Add(context.Background(), int64(svc.Capacity()-svc.AvailableSlots()))

	return is, nil
}

func (is *InstrumentedService) RegisterEntry(ctx context.Context, rawPlate, model string) (Vehicle, error) {
	tracer := is.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking.register_entry",
		trace.WithAttributes(
			attribute.String("vehicle.plate", NormalizePlate(rawPlate)),
			attribute.String("vehicle.model", model),
		))
	defer span.End()

	start := time.Now()

	v, err := is.Service.RegisterEntry(ctx, rawPlate, model)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "register_entry"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(attribute.String("vehicle.id", v.ID.String()))
		span.AddEvent("entry_recorded", trace.WithAttributes(
			attribute.String("vehicle.id", v.ID.String()),
		))
		is.occupancyGauge.Add(ctx, 1)
	}

	is.entryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	is.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return v, err
}

func (is *InstrumentedService) RegisterExit(ctx context.Context, rawPlate string) (Vehicle, decimal.Decimal, error) {
	tracer := is.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking.register_exit",
		trace.WithAttributes(
			attribute.String("vehicle.plate", NormalizePlate(rawPlate)),
		))
	defer span.End()

	start := time.Now()

	v, charge, err := is.Service.RegisterExit(ctx, rawPlate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "register_exit"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.String("vehicle.id", v.ID.String()),
			attribute.String("charge", charge.String()),
		)
		span.AddEvent("exit_recorded", trace.WithAttributes(
			attribute.String("charge", charge.String()),
		))
		is.occupancyGauge.Add(ctx, -1)
		is.revenueCounter.Add(ctx, charge.InexactFloat64(), metric.WithAttributes(labels...))
	}

	is.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	is.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return v, charge, err
}

func (is *InstrumentedService) ListVehicles(ctx context.Context) []Vehicle {
	tracer := is.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking.list_vehicles")
	defer span.End()

	start := time.Now()

	vehicles := is.Service.ListVehicles()

	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Int("vehicle_count", len(vehicles)))

	labels := []attribute.KeyValue{
		attribute.String("operation", "list_vehicles"),
		attribute.String("status", "success"),
	}
	is.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return vehicles
}

func (is *InstrumentedService) FindByPlate(ctx context.Context, rawPlate string) (Vehicle, error) {
	tracer := is.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking.find_by_plate",
		trace.WithAttributes(
			attribute.String("vehicle.plate", NormalizePlate(rawPlate)),
		))
	defer span.End()

	start := time.Now()

	v, err := is.Service.FindByPlate(rawPlate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "find_by_plate"),
	}

	if err != nil {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		span.SetAttributes(attribute.String("vehicle.id", v.ID.String()))
		labels = append(labels, attribute.String("status", "found"))
	}

	is.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return v, err
}
