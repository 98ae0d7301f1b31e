package metrics

const (
	// defaultEnabled 默认采集广告位指标
	defaultEnabled = true

	// defaultNamespace 指标名前缀
	defaultNamespace = "adkit"
)
