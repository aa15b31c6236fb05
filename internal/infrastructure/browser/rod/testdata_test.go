package rod

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title><script>var s = "VERIFY";</script></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	SignupHTML = `<!DOCTYPE html>
<html>
<body>
	<form id="signup" onsubmit="event.preventDefault(); document.getElementById('status').textContent = 'Please verify your email';">
		<input name="first_name" type="text" />
		<input name="email" type="email" />
		<input id="password" type="password" />
		<label><input id="terms" type="checkbox" /> I agree</label>
		<div role="checkbox" id="fancy" aria-checked="true">Fancy</div>
		<button type="submit">Create Account</button>
	</form>
	<div id="status"></div>
	<div class="error">  Email already exists  </div>
</body>
</html>`

	// ClearingHTML wipes first_name the first time email changes.
	ClearingHTML = `<!DOCTYPE html>
<html>
<body>
	<input name="first_name" />
	<input name="email" />
	<script>
		let wiped = false;
		document.querySelector('[name=email]').addEventListener('input', () => {
			if (!wiped) { wiped = true; document.querySelector('[name=first_name]').value = ''; }
		});
	</script>
</body>
</html>`
)

const LoginHTML = `<!DOCTYPE html>
<html>
<body>
	<form onsubmit="event.preventDefault(); document.getElementById('err').textContent = 'Incorrect password';">
		<input type="email" name="email" />
		<input type="password" name="password" />
		<label><input type="checkbox" name="remember" /> Remember me</label>
		<button type="submit">Sign In</button>
	</form>
	<div class="error" id="err"></div>
</body>
</html>`
