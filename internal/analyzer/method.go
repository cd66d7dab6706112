package analyzer

import (
	"fmt"
)

// Method identifies one of the sharpness estimation algorithms. The set is
// closed: estimator dispatch goes through a lookup table keyed by Method, so
// an unrecognized name is rejected when settings are parsed instead of
// silently scoring nothing.
type Method string

const (
	MethodLaplacian Method = "laplacian"
	MethodSobel     Method = "sobel"
	MethodTenengrad Method = "tenengrad"
)

// AllMethods returns every supported method in canonical order.
func AllMethods() []Method {
	return []Method{MethodLaplacian, MethodSobel, MethodTenengrad}
}

// ParseMethod validates a method name from settings or a stored report.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodLaplacian, MethodSobel, MethodTenengrad:
		return Method(name), nil
	default:
		return "", fmt.Errorf("unknown analysis method %q", name)
	}
}

// Description returns the static explanatory text used in text reports.
func (m Method) Description() string {
	switch m {
	case MethodLaplacian:
		return "Measures local pixel intensity variations to detect edges.\n" +
			"   Higher scores indicate sharper, more defined edges."
	case MethodSobel:
		return "Calculates intensity gradients in horizontal and vertical directions.\n" +
			"   Higher scores indicate stronger edge definition and contrast."
	case MethodTenengrad:
		return "Uses thresholded Sobel gradients for noise-resistant edge detection.\n" +
			"   Higher scores indicate better overall image sharpness."
	default:
		return ""
	}
}

// Title returns the display name used in report headings.
func (m Method) Title() string {
	switch m {
	case MethodLaplacian:
		return "Laplacian Variance Method"
	case MethodSobel:
		return "Sobel Gradient Method"
	case MethodTenengrad:
		return "Tenengrad Algorithm"
	default:
		return string(m)
	}
}
