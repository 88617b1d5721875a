package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/meliboard/meliboard-api/infrastructure/repository"
	"github.com/meliboard/meliboard-api/internal/config"
	"github.com/meliboard/meliboard-api/internal/domain"
	"github.com/meliboard/meliboard-api/internal/usecases/connecting"
)

// TokenRefreshSyncConfig representa a configuração da renovação antecipada de tokens
type TokenRefreshSyncConfig struct {
	CronSchedule        string
	LookaheadHours      int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// TokenRefreshSyncService renova antecipadamente os tokens do Mercado Livre
// que estão prestes a expirar, evitando a renovação na hora da requisição.
type TokenRefreshSyncService struct {
	scheduler           *gocron.Scheduler
	config              TokenRefreshSyncConfig
	tokenRepo           repository.MeliTokenRepository
	connector           connecting.Connector
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewTokenRefreshSyncService cria uma nova instância do serviço de renovação de tokens
func NewTokenRefreshSyncService(
	tokenRepo repository.MeliTokenRepository,
	connector connecting.Connector,
	appConfig *config.Config,
) *TokenRefreshSyncService {
	syncConfig := TokenRefreshSyncConfig{
		CronSchedule:        appConfig.TokenRefreshSync.CronSchedule,
		LookaheadHours:      appConfig.TokenRefreshSync.LookaheadHours,
		RequestDelaySeconds: appConfig.TokenRefreshSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.TokenRefreshSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.TokenRefreshSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookahead_hours":       syncConfig.LookaheadHours,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de renovação de tokens carregada")

	return &TokenRefreshSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		tokenRepo:   tokenRepo,
		connector:   connector,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *TokenRefreshSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Renovação antecipada de tokens desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de renovação de tokens")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncExpiringTokens(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar renovação de tokens: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de renovação de tokens")
		s.scheduler.Stop()
	}()

	return nil
}

// syncExpiringTokens renova todos os tokens que expiram dentro da janela de
// antecedência configurada. Apenas uma sincronização roda por vez.
func (s *TokenRefreshSyncService) syncExpiringTokens(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Renovação de tokens já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	deadline := time.Now().Add(time.Duration(s.config.LookaheadHours) * time.Hour)

	expiring, err := s.tokenRepo.ListExpiringBefore(deadline)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar tokens expirando para renovação")
		return
	}

	if len(expiring) == 0 {
		logrus.Info("Nenhum token expirando dentro da janela de antecedência")
		return
	}

	logrus.WithFields(logrus.Fields{
		"tokens":   len(expiring),
		"deadline": deadline.Format(time.RFC3339),
	}).Info("Tokens encontrados para renovação antecipada")

	s.refreshTokens(ctx, expiring)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"tokens":   len(expiring),
	}).Info("Renovação antecipada de tokens concluída")

	s.lastSyncCompletedAt = time.Now()
}

// refreshTokens renova cada token com concorrência limitada e uma pausa
// entre requisições para respeitar o limite da API do Mercado Livre.
func (s *TokenRefreshSyncService) refreshTokens(ctx context.Context, records []*domain.TokenRecord) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	delay := time.Duration(s.config.RequestDelaySeconds) * time.Second

	for _, record := range records {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(rec *domain.TokenRecord) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if _, err := s.connector.RefreshRecord(ctx, rec); err != nil {
				logrus.WithError(err).Warnf("Erro ao renovar token do usuário %s, o próximo acesso exigirá reconexão", rec.UserID)
				return
			}

			logrus.Infof("Token do usuário %s renovado antecipadamente", rec.UserID)
		}(record)

		if delay > 0 {
			select {
			case <-ctx.Done():
				wg.Wait()
				return
			case <-time.After(delay):
			}
		}
	}

	wg.Wait()
}

// TriggerManualSync inicia manualmente uma renovação de tokens
func (s *TokenRefreshSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Renovação de tokens já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando renovação manual de tokens")
	go s.syncExpiringTokens(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *TokenRefreshSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookahead_hours":   s.config.LookaheadHours,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
