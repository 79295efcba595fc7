package common

// Issue codes attached to rows by the annotation stages. Multiple codes on one
// row are concatenated with NoteDelimiter, never overwritten.
const (
	NoteDateNotInData     = "signal_date_not_in_data"
	NoteInsufficientAtr   = "insufficient_data_for_atr"
	NoteInvalidEntryOrAtr = "invalid_entry_or_atr"
	NoteOverlappingOpen   = "overlapping_open_signal"
	NoteCannotUseNextOpen = "cannot_use_next_open"
	NoteNoCloseInHistory  = "no_close_in_history_blocking_future"

	NoteDelimiter = ";"
)
