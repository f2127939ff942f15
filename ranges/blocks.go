package ranges

// block is a named Unicode block. Names follow the XML Schema convention:
// the Blocks.txt name with spaces removed, looked up as "Is" + name.
type block struct {
	name string
	r    []Range
}

// blocks lists the blocks of XML Schema Part 2 Appendix F (Unicode 3.1)
// followed by later additions that are commonly referenced in patterns.
var blocks = []block{
	{"BasicLatin", []Range{{0x0000, 0x007F}}},
	{"Latin-1Supplement", []Range{{0x0080, 0x00FF}}},
	{"LatinExtended-A", []Range{{0x0100, 0x017F}}},
	{"LatinExtended-B", []Range{{0x0180, 0x024F}}},
	{"IPAExtensions", []Range{{0x0250, 0x02AF}}},
	{"SpacingModifierLetters", []Range{{0x02B0, 0x02FF}}},
	{"CombiningDiacriticalMarks", []Range{{0x0300, 0x036F}}},
	{"Greek", []Range{{0x0370, 0x03FF}}},
	{"GreekandCoptic", []Range{{0x0370, 0x03FF}}},
	{"Cyrillic", []Range{{0x0400, 0x04FF}}},
	{"CyrillicSupplement", []Range{{0x0500, 0x052F}}},
	{"Armenian", []Range{{0x0530, 0x058F}}},
	{"Hebrew", []Range{{0x0590, 0x05FF}}},
	{"Arabic", []Range{{0x0600, 0x06FF}}},
	{"Syriac", []Range{{0x0700, 0x074F}}},
	{"ArabicSupplement", []Range{{0x0750, 0x077F}}},
	{"Thaana", []Range{{0x0780, 0x07BF}}},
	{"NKo", []Range{{0x07C0, 0x07FF}}},
	{"Devanagari", []Range{{0x0900, 0x097F}}},
	{"Bengali", []Range{{0x0980, 0x09FF}}},
	{"Gurmukhi", []Range{{0x0A00, 0x0A7F}}},
	{"Gujarati", []Range{{0x0A80, 0x0AFF}}},
	{"Oriya", []Range{{0x0B00, 0x0B7F}}},
	{"Tamil", []Range{{0x0B80, 0x0BFF}}},
	{"Telugu", []Range{{0x0C00, 0x0C7F}}},
	{"Kannada", []Range{{0x0C80, 0x0CFF}}},
	{"Malayalam", []Range{{0x0D00, 0x0D7F}}},
	{"Sinhala", []Range{{0x0D80, 0x0DFF}}},
	{"Thai", []Range{{0x0E00, 0x0E7F}}},
	{"Lao", []Range{{0x0E80, 0x0EFF}}},
	{"Tibetan", []Range{{0x0F00, 0x0FFF}}},
	{"Myanmar", []Range{{0x1000, 0x109F}}},
	{"Georgian", []Range{{0x10A0, 0x10FF}}},
	{"HangulJamo", []Range{{0x1100, 0x11FF}}},
	{"Ethiopic", []Range{{0x1200, 0x137F}}},
	{"Cherokee", []Range{{0x13A0, 0x13FF}}},
	{"UnifiedCanadianAboriginalSyllabics", []Range{{0x1400, 0x167F}}},
	{"Ogham", []Range{{0x1680, 0x169F}}},
	{"Runic", []Range{{0x16A0, 0x16FF}}},
	{"Tagalog", []Range{{0x1700, 0x171F}}},
	{"Hanunoo", []Range{{0x1720, 0x173F}}},
	{"Buhid", []Range{{0x1740, 0x175F}}},
	{"Tagbanwa", []Range{{0x1760, 0x177F}}},
	{"Khmer", []Range{{0x1780, 0x17FF}}},
	{"Mongolian", []Range{{0x1800, 0x18AF}}},
	{"Limbu", []Range{{0x1900, 0x194F}}},
	{"TaiLe", []Range{{0x1950, 0x197F}}},
	{"KhmerSymbols", []Range{{0x19E0, 0x19FF}}},
	{"PhoneticExtensions", []Range{{0x1D00, 0x1D7F}}},
	{"LatinExtendedAdditional", []Range{{0x1E00, 0x1EFF}}},
	{"GreekExtended", []Range{{0x1F00, 0x1FFF}}},
	{"GeneralPunctuation", []Range{{0x2000, 0x206F}}},
	{"SuperscriptsandSubscripts", []Range{{0x2070, 0x209F}}},
	{"CurrencySymbols", []Range{{0x20A0, 0x20CF}}},
	{"CombiningMarksforSymbols", []Range{{0x20D0, 0x20FF}}},
	{"CombiningDiacriticalMarksforSymbols", []Range{{0x20D0, 0x20FF}}},
	{"LetterlikeSymbols", []Range{{0x2100, 0x214F}}},
	{"NumberForms", []Range{{0x2150, 0x218F}}},
	{"Arrows", []Range{{0x2190, 0x21FF}}},
	{"MathematicalOperators", []Range{{0x2200, 0x22FF}}},
	{"MiscellaneousTechnical", []Range{{0x2300, 0x23FF}}},
	{"ControlPictures", []Range{{0x2400, 0x243F}}},
	{"OpticalCharacterRecognition", []Range{{0x2440, 0x245F}}},
	{"EnclosedAlphanumerics", []Range{{0x2460, 0x24FF}}},
	{"BoxDrawing", []Range{{0x2500, 0x257F}}},
	{"BlockElements", []Range{{0x2580, 0x259F}}},
	{"GeometricShapes", []Range{{0x25A0, 0x25FF}}},
	{"MiscellaneousSymbols", []Range{{0x2600, 0x26FF}}},
	{"Dingbats", []Range{{0x2700, 0x27BF}}},
	{"MiscellaneousMathematicalSymbols-A", []Range{{0x27C0, 0x27EF}}},
	{"SupplementalArrows-A", []Range{{0x27F0, 0x27FF}}},
	{"BraillePatterns", []Range{{0x2800, 0x28FF}}},
	{"SupplementalArrows-B", []Range{{0x2900, 0x297F}}},
	{"MiscellaneousMathematicalSymbols-B", []Range{{0x2980, 0x29FF}}},
	{"SupplementalMathematicalOperators", []Range{{0x2A00, 0x2AFF}}},
	{"MiscellaneousSymbolsandArrows", []Range{{0x2B00, 0x2BFF}}},
	{"CJKRadicalsSupplement", []Range{{0x2E80, 0x2EFF}}},
	{"KangxiRadicals", []Range{{0x2F00, 0x2FDF}}},
	{"IdeographicDescriptionCharacters", []Range{{0x2FF0, 0x2FFF}}},
	{"CJKSymbolsandPunctuation", []Range{{0x3000, 0x303F}}},
	{"Hiragana", []Range{{0x3040, 0x309F}}},
	{"Katakana", []Range{{0x30A0, 0x30FF}}},
	{"Bopomofo", []Range{{0x3100, 0x312F}}},
	{"HangulCompatibilityJamo", []Range{{0x3130, 0x318F}}},
	{"Kanbun", []Range{{0x3190, 0x319F}}},
	{"BopomofoExtended", []Range{{0x31A0, 0x31BF}}},
	{"KatakanaPhoneticExtensions", []Range{{0x31F0, 0x31FF}}},
	{"EnclosedCJKLettersandMonths", []Range{{0x3200, 0x32FF}}},
	{"CJKCompatibility", []Range{{0x3300, 0x33FF}}},
	{"CJKUnifiedIdeographsExtensionA", []Range{{0x3400, 0x4DBF}}},
	{"YijingHexagramSymbols", []Range{{0x4DC0, 0x4DFF}}},
	{"CJKUnifiedIdeographs", []Range{{0x4E00, 0x9FFF}}},
	{"YiSyllables", []Range{{0xA000, 0xA48F}}},
	{"YiRadicals", []Range{{0xA490, 0xA4CF}}},
	{"HangulSyllables", []Range{{0xAC00, 0xD7AF}}},
	{"HighSurrogates", []Range{{0xD800, 0xDB7F}}},
	{"HighPrivateUseSurrogates", []Range{{0xDB80, 0xDBFF}}},
	{"LowSurrogates", []Range{{0xDC00, 0xDFFF}}},
	{"PrivateUse", []Range{{0xE000, 0xF8FF}, {0xF0000, 0xFFFFF}, {0x100000, 0x10FFFF}}},
	{"PrivateUseArea", []Range{{0xE000, 0xF8FF}}},
	{"CJKCompatibilityIdeographs", []Range{{0xF900, 0xFAFF}}},
	{"AlphabeticPresentationForms", []Range{{0xFB00, 0xFB4F}}},
	{"ArabicPresentationForms-A", []Range{{0xFB50, 0xFDFF}}},
	{"VariationSelectors", []Range{{0xFE00, 0xFE0F}}},
	{"CombiningHalfMarks", []Range{{0xFE20, 0xFE2F}}},
	{"CJKCompatibilityForms", []Range{{0xFE30, 0xFE4F}}},
	{"SmallFormVariants", []Range{{0xFE50, 0xFE6F}}},
	{"ArabicPresentationForms-B", []Range{{0xFE70, 0xFEFE}}},
	{"HalfwidthandFullwidthForms", []Range{{0xFF00, 0xFFEF}}},
	{"Specials", []Range{{0xFEFF, 0xFEFF}, {0xFFF0, 0xFFFF}}},
	{"LinearBSyllabary", []Range{{0x10000, 0x1007F}}},
	{"LinearBIdeograms", []Range{{0x10080, 0x100FF}}},
	{"AegeanNumbers", []Range{{0x10100, 0x1013F}}},
	{"OldItalic", []Range{{0x10300, 0x1032F}}},
	{"Gothic", []Range{{0x10330, 0x1034F}}},
	{"Ugaritic", []Range{{0x10380, 0x1039F}}},
	{"Deseret", []Range{{0x10400, 0x1044F}}},
	{"Shavian", []Range{{0x10450, 0x1047F}}},
	{"Osmanya", []Range{{0x10480, 0x104AF}}},
	{"CypriotSyllabary", []Range{{0x10800, 0x1083F}}},
	{"ByzantineMusicalSymbols", []Range{{0x1D000, 0x1D0FF}}},
	{"MusicalSymbols", []Range{{0x1D100, 0x1D1FF}}},
	{"TaiXuanJingSymbols", []Range{{0x1D300, 0x1D35F}}},
	{"MathematicalAlphanumericSymbols", []Range{{0x1D400, 0x1D7FF}}},
	{"CJKUnifiedIdeographsExtensionB", []Range{{0x20000, 0x2A6DF}}},
	{"CJKCompatibilityIdeographsSupplement", []Range{{0x2F800, 0x2FA1F}}},
	{"Tags", []Range{{0xE0000, 0xE007F}}},
	{"VariationSelectorsSupplement", []Range{{0xE0100, 0xE01EF}}},
	{"SupplementaryPrivateUseArea-A", []Range{{0xF0000, 0xFFFFF}}},
	{"SupplementaryPrivateUseArea-B", []Range{{0x100000, 0x10FFFF}}},
}
