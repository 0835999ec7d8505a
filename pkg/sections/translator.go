package sections

import "lyrics-sections/pkg/translate"

// Translator turns header label text into the language of the standard
// section names.
type Translator = translate.Translator
