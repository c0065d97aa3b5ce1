package store

// Keys shared between engines, export and the CLI. All are namespaced under Prefix.
const (
	Prefix = "blok_"

	KeyMode = "blok_mode"

	KeyTimerDuration  = "blok_timer_dur"
	KeyTimerEnd       = "blok_timer_end"
	KeyTimerRemaining = "blok_timer_rem"
	KeyTimerState     = "blok_timer_state"
	KeyTimerMomentum  = "blok_timer_momentum"
	KeyTimerHandoff   = "blok_timer_handoff"
	KeyLastPreset     = "blok_last_preset"
	KeyTaskTimer      = "blok_task_timer"

	KeyStopwatchStart   = "blok_sw_start"
	KeyStopwatchElapsed = "blok_sw_elapsed"
	KeyStopwatchState   = "blok_sw_state"
	KeyStopwatchLaps    = "blok_sw_laps"
	KeyTaskStopwatch    = "blok_task_stopwatch"

	KeyDailyTotal = "blok_daily_total"
	KeyDailyDate  = "blok_daily_date"
	KeyDailyGoal  = "blok_daily_goal"
	KeyHistory    = "blok_history"

	KeyJournalLog     = "blok_journal_log"
	KeyJournalArchive = "blok_journal_archive"

	KeyMomentumMode  = "blok_momentum_mode"
	KeyAutoFlow      = "blok_autoflow_enabled"
	KeyBreakPref     = "blok_break_pref"
	KeyNotifications = "blok_notifications"

	KeySessionPhase      = "blok_session_phase"
	KeySessionBase       = "blok_session_base_dur"
	KeySessionFocusTally = "blok_session_focus_tally"
	KeySessionBreakTally = "blok_session_break_tally"
	KeySessionID         = "blok_session_id"
	KeySavedSessions     = "blok_saved_sessions"
)
