package i18n

// Message IDs shared by the editor state and the views.
const (
	AppTitle         = "app_title"
	AppTitleVertical = "app_title_vertical"
	NavEditor        = "nav_editor"
	NavAbout         = "nav_about"
	NavDisclaimer    = "nav_disclaimer"
	KeyboardTitle    = "keyboard_title"

	ButtonToVertical    = "button_to_vertical"
	ButtonToHorizontal  = "button_to_horizontal"
	ButtonCopyImage     = "button_copy_image"
	ButtonDownloadImage = "button_download_image"
	ButtonShowKeyboard  = "button_show_keyboard"
	ButtonHideKeyboard  = "button_hide_keyboard"
	FontSize            = "font_size"

	StatusLoadingFont         = "status_loading_font"
	StatusFontReady           = "status_font_ready"
	StatusFontFallback        = "status_font_fallback"
	StatusEditorUninitialized = "status_editor_uninitialized"
	StatusNoText              = "status_no_text"
	StatusNoSelection         = "status_no_selection"
	StatusCanvasFailed        = "status_canvas_failed"
	StatusCopied              = "status_copied"
	StatusCopyFailed          = "status_copy_failed"
	StatusDownloaded          = "status_downloaded"
	StatusDownloadFailed      = "status_download_failed"

	HintType        = "hint_type"
	HintBackspace   = "hint_backspace"
	HintSpace       = "hint_space"
	HintKeyboard    = "hint_keyboard"
	HintCopy        = "hint_copy"
	HintOrientation = "hint_orientation"
	HintBack        = "hint_back"

	AboutTitle      = "about_title"
	AboutBody       = "about_body"
	DisclaimerTitle = "disclaimer_title"
	DisclaimerBody  = "disclaimer_body"
)
