package site

import (
	"regexp"
	"strings"
)

var (
	hexColorRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorRe = regexp.MustCompile(`^(?i:rgba?|hsla?)\(\s*[-+0-9.%a-z\s,/]+\)$`)
	gradientRe  = regexp.MustCompile(`^(?i:(?:repeating-)?(?:linear|radial|conic)-gradient)\(.+\)$`)
)

// namedColors is the CSS Color Module Level 4 named color keyword set.
var namedColors = map[string]bool{}

func init() {
	for _, name := range strings.Fields(`
		aliceblue antiquewhite aqua aquamarine azure beige bisque black blanchedalmond blue
		blueviolet brown burlywood cadetblue chartreuse chocolate coral cornflowerblue cornsilk
		crimson cyan darkblue darkcyan darkgoldenrod darkgray darkgreen darkgrey darkkhaki
		darkmagenta darkolivegreen darkorange darkorchid darkred darksalmon darkseagreen
		darkslateblue darkslategray darkslategrey darkturquoise darkviolet deeppink deepskyblue
		dimgray dimgrey dodgerblue firebrick floralwhite forestgreen fuchsia gainsboro ghostwhite
		gold goldenrod gray green greenyellow grey honeydew hotpink indianred indigo ivory khaki
		lavender lavenderblush lawngreen lemonchiffon lightblue lightcoral lightcyan
		lightgoldenrodyellow lightgray lightgreen lightgrey lightpink lightsalmon lightseagreen
		lightskyblue lightslategray lightslategrey lightsteelblue lightyellow lime limegreen linen
		magenta maroon mediumaquamarine mediumblue mediumorchid mediumpurple mediumseagreen
		mediumslateblue mediumspringgreen mediumturquoise mediumvioletred midnightblue mintcream
		mistyrose moccasin navajowhite navy oldlace olive olivedrab orange orangered orchid
		palegoldenrod palegreen paleturquoise palevioletred papayawhip peachpuff peru pink plum
		powderblue purple rebeccapurple red rosybrown royalblue saddlebrown salmon sandybrown
		seagreen seashell sienna silver skyblue slateblue slategray slategrey snow springgreen
		steelblue tan teal thistle tomato turquoise violet wheat white whitesmoke yellow
		yellowgreen transparent currentcolor`) {
		namedColors[name] = true
	}
}

// IsColor reports whether s is a syntactically valid CSS color token.
func IsColor(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return hexColorRe.MatchString(s) || funcColorRe.MatchString(s) || namedColors[strings.ToLower(s)]
}

// IsBackground reports whether s is a valid color or CSS gradient.
func IsBackground(s string) bool {
	s = strings.TrimSpace(s)
	return IsColor(s) || gradientRe.MatchString(s)
}
