package planning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
	"github.com/jhoicas/mrp-api/internal/domain/mrp"
	"github.com/jhoicas/mrp-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Valores por defecto de RunOptions.
const (
	DefaultHorizonDays = 30
	DefaultWorkers     = 4
)

// RunOptions parámetros de una corrida.
type RunOptions struct {
	HorizonDays int
	Workers     int
	Timeout     time.Duration
	CreatedBy   string
	// PolicyFor permite sustituir la política de lote por material; nil o resultado nil
	// usan DefaultPolicy.
	PolicyFor func(*entity.Material) mrp.Policy
}

func (o RunOptions) withDefaults() RunOptions {
	if o.HorizonDays <= 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	return o
}

func (o RunOptions) policy(m *entity.Material) mrp.Policy {
	if o.PolicyFor != nil {
		if p := o.PolicyFor(m); p != nil {
			return p
		}
	}
	return DefaultPolicy(m)
}

// RunSummary totales de la corrida, plegados una sola vez a partir de los resultados por material.
type RunSummary struct {
	MaterialsProcessed   int
	MaterialsSkipped     int
	PlannedOrdersCreated int
	TotalShortageQty     decimal.Decimal
	SkippedMaterials     []entity.SkippedMaterial
	Cancelled            bool
}

// materialResult resultado de un material. Cada worker escribe solo su índice.
type materialResult struct {
	done      bool
	cancelled bool
	skipped   *entity.SkippedMaterial
	orders    int
	shortage  decimal.Decimal
}

// foldResults recorre los resultados en el orden de los materiales.
func foldResults(results []materialResult) RunSummary {
	s := RunSummary{TotalShortageQty: decimal.Zero, SkippedMaterials: []entity.SkippedMaterial{}}
	for _, r := range results {
		switch {
		case r.cancelled:
			s.Cancelled = true
		case r.skipped != nil:
			s.MaterialsSkipped++
			s.SkippedMaterials = append(s.SkippedMaterials, *r.skipped)
		case r.done:
			s.MaterialsProcessed++
			s.PlannedOrdersCreated += r.orders
			s.TotalShortageQty = s.TotalShortageQty.Add(r.shortage)
		}
	}
	return s
}

// Orchestrator ejecuta corridas MRP para una organización y planta.
type Orchestrator struct {
	materialRepo repository.MaterialRepository
	runRepo      repository.MRPRunRepository
	txRunner     TxRunner
	demand       *DemandBuilder
	calculator   *NetRequirementsCalculator
	generator    *PlannedOrderGenerator
	metrics      RunMetrics
	log          zerolog.Logger
	now          func() time.Time
}

// NewOrchestrator construye el orquestador. metrics puede ser nil.
func NewOrchestrator(
	materialRepo repository.MaterialRepository,
	runRepo repository.MRPRunRepository,
	txRunner TxRunner,
	demand *DemandBuilder,
	calculator *NetRequirementsCalculator,
	generator *PlannedOrderGenerator,
	metrics RunMetrics,
	log zerolog.Logger,
) *Orchestrator {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Orchestrator{
		materialRepo: materialRepo,
		runRepo:      runRepo,
		txRunner:     txRunner,
		demand:       demand,
		calculator:   calculator,
		generator:    generator,
		metrics:      metrics,
		log:          log.With().Str("component", "mrp_orchestrator").Logger(),
		now:          time.Now,
	}
}

// RunMRP crea la corrida en RUNNING, planifica cada material MRP de la planta y la cierra una
// sola vez en COMPLETED o FAILED. Los errores por material omiten el material; los de
// infraestructura y la cancelación terminan en FAILED conservando los contadores parciales.
// Solo devuelve error si la corrida no pudo crearse o cerrarse.
func (o *Orchestrator) RunMRP(ctx context.Context, organizationID, plantID string, opts RunOptions) (*entity.MRPRun, error) {
	opts = opts.withDefaults()
	if organizationID == "" || plantID == "" {
		return nil, fmt.Errorf("%w: organización y planta son requeridas", domain.ErrInvalidInput)
	}

	started := o.now()
	start := entity.TruncateDay(started)
	runID := uuid.New().String()
	run := &entity.MRPRun{
		ID:                   runID,
		RunCode:              runCode(started, runID),
		OrganizationID:       organizationID,
		PlantID:              plantID,
		Status:               entity.MRPRunStatusRunning,
		RunDate:              started,
		PlanningHorizonStart: start,
		PlanningHorizonEnd:   start.AddDate(0, 0, opts.HorizonDays),
		TotalShortageQty:     decimal.Zero,
		SkippedMaterials:     []entity.SkippedMaterial{},
		CreatedBy:            opts.CreatedBy,
	}
	if err := o.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("%w: crear corrida: %w", domain.ErrPlannedOrderWriteFailure, err)
	}

	log := o.log.With().Str("run_id", run.ID).Str("run_code", run.RunCode).
		Str("organization_id", organizationID).Str("plant_id", plantID).Logger()
	log.Info().Int("horizon_days", opts.HorizonDays).Int("workers", opts.Workers).Msg("corrida MRP iniciada")

	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	summary, runErr := o.plan(runCtx, run, opts, log)
	o.finish(run, summary, runErr)

	// El cierre se persiste aunque el contexto de la corrida esté cancelado.
	if err := o.runRepo.Finish(context.WithoutCancel(ctx), run); err != nil {
		log.Error().Err(err).Msg("no se pudo cerrar la corrida")
		return run, fmt.Errorf("%w: cerrar corrida: %w", domain.ErrPlannedOrderWriteFailure, err)
	}

	elapsed := o.now().Sub(started)
	o.metrics.ObserveRun(run.Status, elapsed)
	event := log.Info()
	if run.Status == entity.MRPRunStatusFailed {
		event = log.Error().Str("error", run.ErrorMessage)
	}
	event.Str("status", run.Status).
		Int("materials_processed", run.MaterialsProcessed).
		Int("materials_skipped", run.MaterialsSkipped).
		Int("planned_orders_created", run.PlannedOrdersCreated).
		Str("total_shortage_qty", run.TotalShortageQty.String()).
		Dur("elapsed", elapsed).
		Msg("corrida MRP finalizada")
	return run, nil
}

// plan procesa los materiales en un pool acotado y pliega los resultados.
func (o *Orchestrator) plan(ctx context.Context, run *entity.MRPRun, opts RunOptions, log zerolog.Logger) (RunSummary, error) {
	materials, err := o.materialRepo.ListForMRP(ctx, run.OrganizationID, run.PlantID)
	if err != nil {
		return foldResults(nil), readFailure(err, "materiales MRP")
	}
	if len(materials) == 0 {
		return foldResults(nil), nil
	}

	book, err := o.demand.Build(ctx, run.OrganizationID, run.PlantID, run.PlanningHorizonStart, run.PlanningHorizonEnd)
	if err != nil {
		return foldResults(nil), err
	}

	results := make([]materialResult, len(materials))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, m := range materials {
		i, m := i, m
		if gctx.Err() != nil {
			for j := i; j < len(materials); j++ {
				results[j].cancelled = true
			}
			break
		}
		g.Go(func() error {
			defer o.recoverMaterial(&results[i], m, log)
			if gctx.Err() != nil {
				results[i].cancelled = true
				return nil
			}
			res, err := o.planMaterial(gctx, run, m, book, opts, log)
			if err != nil {
				log.Error().Err(err).Str("material_id", m.ID).Msg("fallo de infraestructura")
				results[i].cancelled = true
				return err
			}
			results[i] = res
			return nil
		})
	}
	runErr := g.Wait()

	summary := foldResults(results)
	if runErr == nil && summary.Cancelled {
		runErr = ctx.Err()
		if runErr == nil {
			runErr = context.Canceled
		}
	}
	return summary, runErr
}

// recoverMaterial convierte un pánico al planificar m en una omisión UNKNOWN,
// de modo que el resto de la corrida continúa.
func (o *Orchestrator) recoverMaterial(out *materialResult, m *entity.Material, log zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	err := fmt.Errorf("pánico al planificar el material: %v", r)
	reason := domain.SkipReason(err)
	log.Error().Err(err).Str("material_id", m.ID).Str("reason", reason).Msg("material omitido")
	o.metrics.MaterialSkipped(reason)
	*out = materialResult{skipped: &entity.SkippedMaterial{MaterialID: m.ID, Reason: reason, Message: err.Error()}}
}

// planMaterial netea un material y persiste sus órdenes en una transacción.
// Devuelve error solo para fallos de infraestructura.
func (o *Orchestrator) planMaterial(
	ctx context.Context,
	run *entity.MRPRun,
	m *entity.Material,
	book *DemandBook,
	opts RunOptions,
	log zerolog.Logger,
) (materialResult, error) {
	skip := func(err error) (materialResult, error) {
		reason := domain.SkipReason(err)
		log.Warn().Err(err).Str("material_id", m.ID).Str("reason", reason).Msg("material omitido")
		o.metrics.MaterialSkipped(reason)
		return materialResult{skipped: &entity.SkippedMaterial{MaterialID: m.ID, Reason: reason, Message: err.Error()}}, nil
	}

	if err := book.Failure(m.ID); err != nil {
		return skip(err)
	}

	res, err := o.calculator.Calculate(ctx, m.ID, run.PlanningHorizonStart, run.PlanningHorizonEnd, book.For(m.ID))
	if err != nil {
		if domain.IsInfrastructure(err) {
			return materialResult{}, err
		}
		return skip(err)
	}

	out := materialResult{done: true, shortage: res.NetRequirements}
	if res.NetRequirements.IsPositive() {
		orders, err := o.generator.GenerateForProfile(run, m, res.NetProfile, opts.policy(m))
		if err != nil {
			return skip(err)
		}
		if len(orders) > 0 {
			err = o.txRunner.RunPlanning(ctx, func(repo repository.PlannedOrderRepository) error {
				return repo.CreateBatch(ctx, orders)
			})
			if err != nil {
				return materialResult{}, fmt.Errorf("%w: material %s: %w", domain.ErrPlannedOrderWriteFailure, m.ID, err)
			}
		}
		out.orders = len(orders)
		o.metrics.PlannedOrdersCreated(len(orders))
	}
	o.metrics.MaterialProcessed()
	return out, nil
}

// finish aplica el resumen a la corrida y fija el estado terminal.
func (o *Orchestrator) finish(run *entity.MRPRun, s RunSummary, runErr error) {
	run.MaterialsProcessed = s.MaterialsProcessed
	run.MaterialsSkipped = s.MaterialsSkipped
	run.PlannedOrdersCreated = s.PlannedOrdersCreated
	run.TotalShortageQty = s.TotalShortageQty
	run.SkippedMaterials = s.SkippedMaterials

	completed := o.now()
	run.CompletedAt = &completed
	switch {
	case runErr == nil:
		run.Status = entity.MRPRunStatusCompleted
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		run.Status = entity.MRPRunStatusFailed
		run.ErrorMessage = "corrida cancelada: " + runErr.Error()
	default:
		run.Status = entity.MRPRunStatusFailed
		run.ErrorMessage = runErr.Error()
	}
}

// runCode MRP-YYYYMMDD-XXXXXXXX con los primeros 8 caracteres hex del id.
func runCode(at time.Time, id string) string {
	return fmt.Sprintf("MRP-%s-%s", at.Format("20060102"), strings.ToUpper(id[:8]))
}
