package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// StaleAssignmentWorker varre buyer_leads presos em pending: atribuições
// cuja cobrança nunca aconteceu (crash ou erro entre a atribuição e o
// débito). Como nenhum dinheiro se moveu, encerrar a linha não mexe no
// razão — só tira o pendurado da frente.
type StaleAssignmentWorker struct {
	db            *sql.DB
	pendingWindow time.Duration
	tickInterval  time.Duration
}

func NewStaleAssignmentWorker(db *sql.DB) *StaleAssignmentWorker {
	return &StaleAssignmentWorker{
		db:            db,
		pendingWindow: 30 * time.Minute, // pending além disso é lixo de crash
		tickInterval:  5 * time.Minute,
	}
}

// staleCutoff diz até quando um pending ainda é tolerado.
func (w *StaleAssignmentWorker) staleCutoff(now time.Time) time.Time {
	return now.Add(-w.pendingWindow)
}

func (w *StaleAssignmentWorker) Start(ctx context.Context) {
	log.Printf("🕒 Stale Assignment Worker iniciado (janela de %s)", w.pendingWindow)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireStaleAssignments(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Stale Assignment Worker encerrado")
			return
		case <-ticker.C:
			w.expireStaleAssignments(ctx)
		}
	}
}

func (w *StaleAssignmentWorker) expireStaleAssignments(ctx context.Context) {
	query := `
		UPDATE buyer_leads
		SET
			status = 'returned',
			returned_at = NOW(),
			return_reason = 'assignment expired before charge'
		WHERE
			status = 'pending'
			AND created_at < $1
		RETURNING id, buyer_id, created_at
	`

	rows, err := w.db.QueryContext(ctx, query, w.staleCutoff(time.Now()))
	if err != nil {
		log.Printf("❌ Erro ao buscar atribuições presas: %v", err)
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var leadID, buyerID int64
		var createdAt time.Time

		if err := rows.Scan(&leadID, &buyerID, &createdAt); err != nil {
			log.Printf("⚠️ Erro ao escanear atribuição presa: %v", err)
			continue
		}

		elapsed := time.Since(createdAt)
		log.Printf("⏱️ Atribuição expirada: lead=%d buyer=%d elapsed=%s",
			leadID, buyerID, elapsed.Round(time.Minute))
		expiredCount++
	}

	if expiredCount > 0 {
		log.Printf("✅ %d atribuição(ões) pendentes encerradas", expiredCount)
	}
}
