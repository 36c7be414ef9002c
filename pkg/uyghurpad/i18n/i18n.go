package i18n

import (
	"embed"
	"encoding/json"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var embeddedLocales embed.FS

// DefaultLanguage is the UI language used when nothing else is configured.
var DefaultLanguage = language.MustParse("zh-Hans")

var i *I18N

type I18N struct {
	localizer *i18n.Localizer
	bundle    *i18n.Bundle
	tag       language.Tag
}

type MessageFile struct {
	Name    string
	Content []byte
}

func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// Init loads the embedded message files plus any extra files on disk and
// selects lang. Extra files override embedded messages with the same ID.
func Init(lang string, extraFilePaths ...string) error {
	bundle := newBundle()

	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		content, err := embeddedLocales.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := bundle.ParseMessageFileBytes(content, name); err != nil {
			return err
		}
	}

	for _, messageFile := range extraFilePaths {
		if _, err := bundle.LoadMessageFile(messageFile); err != nil {
			return err
		}
	}

	i = &I18N{bundle: bundle}
	if lang == "" {
		SetLanguage(DefaultLanguage)
		return nil
	}
	return SetWithCode(lang)
}

func InitI18NFromBytes(messageFiles []MessageFile) error {
	bundle := newBundle()

	for _, messageFile := range messageFiles {
		_, err := bundle.ParseMessageFileBytes(messageFile.Content, messageFile.Name)
		if err != nil {
			return err
		}
	}

	i = &I18N{bundle: bundle}
	SetLanguage(DefaultLanguage)

	return nil
}

func SetLanguage(lang language.Tag) {
	localizer := i18n.NewLocalizer(i.bundle, lang.String(), DefaultLanguage.String())

	i = &I18N{localizer: localizer, bundle: i.bundle, tag: lang}
}

func SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(lang)
	return nil
}

// Language returns the active UI language.
func Language() language.Tag {
	if i == nil {
		return DefaultLanguage
	}
	return i.tag
}

// GetString retrieves a localized string by key.
// If the key is not found, it returns the key itself.
func GetString(key string) string {
	if i == nil {
		return key
	}
	msg, err := i.localizer.Localize(&i18n.LocalizeConfig{
		MessageID: key,
	})
	if err != nil {
		return key
	}
	return msg
}

// GetStringWithData retrieves a localized string by key with template data.
func GetStringWithData(key string, templateData map[string]interface{}) string {
	if i == nil {
		return key
	}
	msg, err := i.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		return key
	}
	return msg
}
