package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultLanguageIsChinese(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Equal(t, DefaultLanguage, Language())
	assert.Equal(t, "回鹘文编辑工具", GetString(AppTitle))
	assert.Equal(t, "请先选择要转换的文本", GetString(StatusNoSelection))
	assert.Equal(t, "已成功复制到剪贴板", GetString(StatusCopied))
}

func TestEnglish(t *testing.T) {
	require.NoError(t, Init("en"))
	assert.Equal(t, language.English, Language())
	assert.Equal(t, "Copied to clipboard", GetString(StatusCopied))
	assert.Equal(t, "32px", GetStringWithData(FontSize, map[string]interface{}{"Size": 32}))
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	require.NoError(t, Init("fr"))
	assert.Equal(t, "图片已下载", GetString(StatusDownloaded))
}

func TestMissingKeyReturnsKey(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Equal(t, "no_such_message", GetString("no_such_message"))
}

func TestInvalidCode(t *testing.T) {
	require.NoError(t, Init(""))
	assert.Error(t, SetWithCode("not a language!"))
}

func TestExtraFilesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.en.toml")
	require.NoError(t, os.WriteFile(path, []byte(`status_copied = "Done"`+"\n"), 0o644))

	require.NoError(t, Init("en", path))
	assert.Equal(t, "Done", GetString(StatusCopied))
	assert.Equal(t, "Image downloaded", GetString(StatusDownloaded))
}

func TestEveryMessageTranslated(t *testing.T) {
	ids := []string{
		AppTitle, AppTitleVertical, NavEditor, NavAbout, NavDisclaimer, KeyboardTitle,
		ButtonToVertical, ButtonToHorizontal, ButtonCopyImage, ButtonDownloadImage,
		ButtonShowKeyboard, ButtonHideKeyboard,
		StatusLoadingFont, StatusFontReady, StatusFontFallback, StatusEditorUninitialized,
		StatusNoText, StatusNoSelection, StatusCanvasFailed, StatusCopied, StatusCopyFailed,
		StatusDownloaded, StatusDownloadFailed,
		HintType, HintBackspace, HintSpace, HintKeyboard, HintCopy, HintOrientation, HintBack,
		AboutTitle, AboutBody, DisclaimerTitle, DisclaimerBody,
	}
	for _, code := range []string{"zh-Hans", "en"} {
		require.NoError(t, Init(code))
		for _, id := range ids {
			assert.NotEqual(t, id, GetString(id), "%s missing in %s", id, code)
		}
	}
}
