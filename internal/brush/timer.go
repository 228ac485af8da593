package brush

import "time"

// DefaultRepeatInterval - интервал повторного применения кисти-карандаша
const DefaultRepeatInterval = 20 * time.Millisecond

// RepeatTimer - накопитель времени кадра. Срабатывает не чаще одного раза
// за Update, лишнее время переносится на следующий кадр.
type RepeatTimer struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
}

// NewRepeatTimer создает остановленный таймер
func NewRepeatTimer(interval time.Duration) *RepeatTimer {
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	return &RepeatTimer{interval: interval}
}

func (t *RepeatTimer) Interval() time.Duration { return t.interval }

func (t *RepeatTimer) Running() bool { return t.running }

// Start запускает таймер с нуля
func (t *RepeatTimer) Start() {
	t.running = true
	t.elapsed = 0
}

// Stop останавливает таймер и сбрасывает накопленное время
func (t *RepeatTimer) Stop() {
	t.running = false
	t.elapsed = 0
}

// Update добавляет время кадра и возвращает true, если интервал истек
func (t *RepeatTimer) Update(delta time.Duration) bool {
	if !t.running || delta <= 0 {
		return false
	}
	t.elapsed += delta
	if t.elapsed < t.interval {
		return false
	}
	t.elapsed -= t.interval
	if t.elapsed > t.interval {
		// Длинный кадр не должен порождать серию срабатываний
		t.elapsed = t.interval
	}
	return true
}
