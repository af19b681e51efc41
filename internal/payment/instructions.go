package payment

import "strings"

// InstructionMap holds the cashier-facing steps shown after checkout for
// each method.
var InstructionMap = map[Method][]string{
	MethodCash: {
		"Nhận {{customer_paid}} tiền mặt từ khách",
		"Trả lại khách {{change}} tiền thừa",
		"Ghi mã thanh toán {{reference}} lên hoá đơn",
	},
	MethodCard: {
		"Quẹt hoặc chạm thẻ trên máy POS",
		"Nhập số tiền {{amount}} và chờ giao dịch được chấp nhận",
		"Ghi mã thanh toán {{reference}} lên hoá đơn",
	},
	MethodMomo: {
		"Cho khách quét mã QR MoMo tại quầy",
		"Kiểm tra thông báo nhận {{amount}} trên ứng dụng MoMo",
		"Ghi mã thanh toán {{reference}} vào nội dung giao dịch",
	},
	MethodZaloPay: {
		"Cho khách quét mã QR ZaloPay tại quầy",
		"Kiểm tra thông báo nhận {{amount}} trên ứng dụng ZaloPay",
		"Ghi mã thanh toán {{reference}} vào nội dung giao dịch",
	},
	MethodBanking: {
		"Cho khách quét mã VietQR của quán",
		"Yêu cầu khách chuyển khoản {{amount}} với nội dung {{reference}}",
		"Xác nhận tiền đã về tài khoản trước khi giao hoá đơn",
	},
}

func GetInstructions(method Method) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Xác nhận thanh toán {{amount}} với khách",
	}
}

type InstructionVars map[string]string

// InjectVariables replaces {{key}} placeholders. Unknown placeholders are left as-is.
func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
