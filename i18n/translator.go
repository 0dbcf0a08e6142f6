package i18n

// Translator retrieves localized messages for issue and warning codes.
// data provides optional metadata a custom implementation may embed in the
// message (for example, "got" or "key"); the built-in dictionaries keep
// messages fixed and leave structured values to Issue.Params.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var enMessages = map[string]string{
	"parse_error":   "parse error",
	"invalid_type":  "invalid type",
	"required":      "required property missing",
	"unknown_key":   "unknown key",
	"duplicate_key": "duplicate key",
	"truncated":     "truncated",

	"rank_undefined":                   "rank is undefined for this transform",
	"empty_vector":                     "vector must have at least one element",
	"vector_length_mismatch":           "vector lengths differ",
	"rank_inconsistent":                "transforms have inconsistent dimensionality",
	"transform_kind_unknown":           "unknown transform type",
	"transform_count":                  "expected 1 or 2 transforms",
	"first_transform_not_scale":        "first transform must be a scale",
	"second_transform_not_translation": "second transform must be a translation",

	"axis_count":                    "only 2, 3, 4, or 5 axes are allowed",
	"axis_names_duplicate":          "axis names must be unique",
	"space_axis_count":              "only 2 or 3 space axes are allowed",
	"space_axes_not_trailing":       "space axes must come last",
	"time_axis_count":               "only 1 time axis is allowed",
	"channel_axis_count":            "only 1 channel axis is allowed",
	"custom_axis_count":             "only 1 custom axis is allowed",
	"datasets_empty":                "at least one dataset is required",
	"multiscales_empty":             "at least one multiscale entry is required",
	"group_rank_mismatch":           "group transforms do not match dataset dimensionality",
	"version_mismatch":              "version does not match the declared revision",
	"array_missing":                 "expected an array at this path, but none was found",
	"node_not_array":                "expected an array at this path, but found a group",
	"node_not_group":                "expected a group at this path, but found an array",
	"array_rank_disagreement":       "arrays have different dimensionality",
	"transform_array_rank_mismatch": "transform dimensionality must match array dimensionality",

	"count_mismatch":     "argument counts do not line up",
	"path_duplicate":     "dataset paths must be unique",
	"path_invalid":       "invalid dataset path",
	"chunks_invalid":     "invalid chunk shape",
	"axis_order_invalid": "invalid axis order",

	"unit_unrecognized": "unit is not recognized for this axis type",
	"unit_missing":      "unit should be specified",
	"axis_type_missing": "axis type should be specified",
	"axis_type_unknown": "axis type is not one of space, time, or channel",
	"name_missing":      "name should be specified",
	"version_missing":   "version should be specified",
}

var jaMessages = map[string]string{
	"parse_error":   "解析エラー",
	"invalid_type":  "型が不正です",
	"required":      "必須プロパティが不足しています",
	"unknown_key":   "未知のキーです",
	"duplicate_key": "キーが重複しています",
	"truncated":     "打ち切られました",

	"rank_undefined":                   "この変換の次元数は未定義です",
	"empty_vector":                     "ベクトルには少なくとも1要素が必要です",
	"vector_length_mismatch":           "ベクトルの長さが一致しません",
	"rank_inconsistent":                "変換の次元数が一致しません",
	"transform_kind_unknown":           "未知の変換タイプです",
	"transform_count":                  "変換は1個または2個でなければなりません",
	"first_transform_not_scale":        "最初の変換はスケールでなければなりません",
	"second_transform_not_translation": "2番目の変換は平行移動でなければなりません",

	"axis_count":                    "軸は2〜5個でなければなりません",
	"axis_names_duplicate":          "軸名は一意でなければなりません",
	"space_axis_count":              "空間軸は2個または3個でなければなりません",
	"space_axes_not_trailing":       "空間軸は末尾に置かなければなりません",
	"time_axis_count":               "時間軸は1個までです",
	"channel_axis_count":            "チャネル軸は1個までです",
	"custom_axis_count":             "カスタム軸は1個までです",
	"datasets_empty":                "データセットが少なくとも1つ必要です",
	"multiscales_empty":             "multiscalesエントリが少なくとも1つ必要です",
	"group_rank_mismatch":           "グループ変換の次元数がデータセットと一致しません",
	"version_mismatch":              "バージョンがリビジョンと一致しません",
	"array_missing":                 "このパスに配列が見つかりません",
	"node_not_array":                "このパスは配列ではなくグループです",
	"node_not_group":                "このパスはグループではなく配列です",
	"array_rank_disagreement":       "配列の次元数が一致しません",
	"transform_array_rank_mismatch": "変換の次元数は配列の次元数と一致しなければなりません",

	"count_mismatch":     "引数の個数が一致しません",
	"path_duplicate":     "データセットのパスは一意でなければなりません",
	"path_invalid":       "データセットのパスが不正です",
	"chunks_invalid":     "チャンク形状が不正です",
	"axis_order_invalid": "軸順序が不正です",

	"unit_unrecognized": "この軸タイプでは認識されない単位です",
	"unit_missing":      "単位を指定してください",
	"axis_type_missing": "軸タイプを指定してください",
	"axis_type_unknown": "軸タイプがspace/time/channelのいずれでもありません",
	"name_missing":      "名前を指定してください",
	"version_missing":   "バージョンを指定してください",
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	var dict map[string]string
	switch t.lang {
	case "ja":
		dict = jaMessages
	default:
		dict = enMessages
	}
	if msg, ok := dict[code]; ok {
		return msg
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
